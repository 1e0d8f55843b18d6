package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nexapay/admin-portal/internal/core/port"
	"github.com/nexapay/admin-portal/internal/infra/config"
	"github.com/nexapay/admin-portal/internal/transport/http/handlers"
	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
	"github.com/nexapay/admin-portal/internal/usecase"
)

// gateAllowList names the paths served without a session: probes, metrics,
// the login shell (the gate special-cases its redirect), the login and logout
// APIs, and the frontend bundle. Logout is open so that repeating it after the
// cookie is gone stays a no-op instead of a 401.
var gateAllowList = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/api/v1/auth/login",
	"/api/v1/auth/logout",
	"/assets/portal.js",
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Sessions    *usecase.SessionService
	Gateway     port.Gateway
	Events      port.EventPublisher
	RateLimiter *middleware.RateLimiter
	Redis       *goredis.Client
	Metrics     *middleware.HTTPMetrics
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	if len(deps.Config.App.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	}

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	r.Use(middleware.SessionGate(deps.Sessions, gateAllowList...))

	healthHandler := handlers.NewHealthHandler(deps.Redis)
	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.NewPageHandler().RegisterRoutes(r)

	guard := middleware.NewPermissionGuard(deps.Events)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")

		authHandler := handlers.NewAuthHandler(deps.Sessions)
		authHandler.RegisterRoutes(authGroup, buildLoginMiddlewares(deps)...)

		passwordHandler := handlers.NewPasswordHandler(deps.Sessions)
		passwordHandler.RegisterRoutes(authGroup)

		meHandler := handlers.NewMeHandler(deps.Sessions)
		meHandler.RegisterRoutes(api)

		resourceHandler := handlers.NewResourceHandler(deps.Sessions, deps.Gateway, deps.Events)
		resourceHandler.RegisterRoutes(api, guard)
	}

	return r
}

func buildLoginMiddlewares(deps Dependencies) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	limit := deps.Config.RateLimit.LoginMaxAttempts
	if limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       "auth_login_ip",
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
