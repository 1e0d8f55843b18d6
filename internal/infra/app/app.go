package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nexapay/admin-portal/internal/core/port"
	"github.com/nexapay/admin-portal/internal/infra/config"
	kafkainfra "github.com/nexapay/admin-portal/internal/infra/kafka"
	"github.com/nexapay/admin-portal/internal/infra/logger"
	redisinfra "github.com/nexapay/admin-portal/internal/infra/redis"
	"github.com/nexapay/admin-portal/internal/infra/security"
	"github.com/nexapay/admin-portal/internal/infra/telemetry"
	gatewayrepo "github.com/nexapay/admin-portal/internal/repository/gateway"
	redisrepo "github.com/nexapay/admin-portal/internal/repository/redis"
	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
	"github.com/nexapay/admin-portal/internal/transport/http/routes"
	"github.com/nexapay/admin-portal/internal/transport/http/sessioncookie"
	"github.com/nexapay/admin-portal/internal/usecase"
)

// Application wires config, the gateway client, the session service, and the
// HTTP engine together.
type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	redis    *redisinfra.Client
	producer *kafkainfra.Producer
}

// New builds the Application. Configuration has already been validated, so a
// failure here is an infrastructure problem, not a config one.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := telemetry.Attach(ctx, cfg); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	codec, err := security.NewSessionCodec(cfg.Session.Secret, cfg.Session.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init session codec: %w", err)
	}

	gatewayClient, err := gatewayrepo.NewClient(cfg.Gateway, log)
	if err != nil {
		return nil, fmt.Errorf("init gateway client: %w", err)
	}

	cookieStore := sessioncookie.New(cfg.Session.CookieName, cfg.App.Env == "production")

	// Redis is optional: without it login rate limiting is disabled and
	// readiness skips the check.
	var redisClient *redisinfra.Client
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Host != "" {
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}

		window := cfg.RateLimit.WindowDuration
		if window <= 0 {
			window = time.Minute
		}
		rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
			KeyPrefix: cfg.Redis.RateLimitPrefix,
			TTL:       window * 2,
		})
		rateLimiter = middleware.NewRateLimiter(rateLimitStore, log)
	} else {
		log.Info("redis not configured, login rate limiting disabled")
	}

	var producer *kafkainfra.Producer
	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	sessionService := usecase.NewSessionService(
		cfg,
		gatewayClient,
		codec,
		cookieStore,
		eventPublisher,
		security.DefaultPasswordValidator(),
		log,
	)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{
		Namespace: "admin",
	})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	var rawRedis *goredis.Client
	if redisClient != nil {
		rawRedis = redisClient.Client()
	}

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		Sessions:    sessionService,
		Gateway:     gatewayClient,
		Events:      eventPublisher,
		RateLimiter: rateLimiter,
		Redis:       rawRedis,
		Metrics:     metrics,
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		redis:    redisClient,
		producer: producer,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.producer != nil {
			_ = a.producer.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting admin portal",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
