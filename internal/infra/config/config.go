package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrSessionSecretMissing is returned by Validate when no signing secret is
// configured. This is fatal; the process must not serve traffic without it.
var ErrSessionSecretMissing = errors.New("config: session secret is required")

type AppConfig struct {
	App       AppSettings       `mapstructure:"app"`
	Session   SessionSettings   `mapstructure:"session"`
	Gateway   GatewaySettings   `mapstructure:"gateway"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Kafka     KafkaSettings     `mapstructure:"kafka"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Telemetry TelemetrySettings `mapstructure:"telemetry"`
}

type AppSettings struct {
	Name           string   `mapstructure:"name"`
	Env            string   `mapstructure:"env"`
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SessionSettings configures the signed session token and its cookie.
type SessionSettings struct {
	// Secret is the symmetric signing key. Required; startup fails without it.
	Secret string `mapstructure:"secret"`
	// Expiry bounds the session payload (mirrored into the cookie expiry).
	Expiry time.Duration `mapstructure:"expiry"`
	// TokenTTL bounds the token signature itself, a coarser second check
	// layered over Expiry.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// CookieName is the session cookie slot. One session per client.
	CookieName string `mapstructure:"cookie_name"`
}

// GatewaySettings configures the remote payment gateway API client.
type GatewaySettings struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds ordinary calls; LongTimeout is for heavy list/report
	// endpoints.
	Timeout     time.Duration `mapstructure:"timeout"`
	LongTimeout time.Duration `mapstructure:"long_timeout"`
}

// RedisSettings configures the Redis connection used for login rate limiting.
type RedisSettings struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	DB              int    `mapstructure:"db"`
	Password        string `mapstructure:"password"`
	TLSEnabled      bool   `mapstructure:"tls_enabled"`
	RateLimitPrefix string `mapstructure:"rate_limit_prefix"`
}

// KafkaSettings configures the activity event producer.
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	Async       bool     `mapstructure:"async"`
}

// RateLimitSettings configures the sliding window applied to login attempts.
type RateLimitSettings struct {
	WindowDuration   time.Duration `mapstructure:"window_duration"`
	LoginMaxAttempts int           `mapstructure:"login_max_attempts"`
}

type TelemetrySettings struct {
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration from the environment (prefix ADMIN_) with sane
// defaults and validates the result.
func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("ADMIN")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"app.allowed_origins",
		"session.secret",
		"session.expiry",
		"session.token_ttl",
		"session.cookie_name",
		"gateway.base_url",
		"gateway.timeout",
		"gateway.long_timeout",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.tls_enabled",
		"redis.rate_limit_prefix",
		"kafka.brokers",
		"kafka.topic_prefix",
		"kafka.async",
		"rate_limit.window_duration",
		"rate_limit.login_max_attempts",
		"telemetry.service_name",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the invariants that must hold before the process serves
// traffic.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return ErrSessionSecretMissing
	}
	if c.Gateway.BaseURL == "" {
		return errors.New("config: gateway base url is required")
	}
	if c.Session.Expiry <= 0 {
		return errors.New("config: session expiry must be positive")
	}
	if c.Session.TokenTTL < c.Session.Expiry {
		return errors.New("config: session token ttl must not be shorter than session expiry")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "admin-portal")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.allowed_origins", []string{})

	v.SetDefault("session.expiry", "8h")
	v.SetDefault("session.token_ttl", "12h")
	v.SetDefault("session.cookie_name", "session")

	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.long_timeout", "30s")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)
	v.SetDefault("redis.rate_limit_prefix", "admin:rate-limit")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic_prefix", "portal")
	v.SetDefault("kafka.async", true)

	v.SetDefault("rate_limit.window_duration", "1m")
	v.SetDefault("rate_limit.login_max_attempts", 5)

	v.SetDefault("telemetry.service_name", "admin-portal")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "ADMIN_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
