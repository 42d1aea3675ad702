package routes

import (
    "fmt"
    "log/slog"
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/adaptor"
    "github.com/gofiber/fiber/v2/middleware/logger"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/redis/go-redis/v9"

    "github.com/congo-pay/onboarding/internal/config"
    "github.com/congo-pay/onboarding/internal/identity"
    "github.com/congo-pay/onboarding/internal/logging"
    "github.com/congo-pay/onboarding/internal/metrics"
    "github.com/congo-pay/onboarding/internal/middleware"
    "github.com/congo-pay/onboarding/internal/navigation"
    "github.com/congo-pay/onboarding/internal/notification"
    "github.com/congo-pay/onboarding/internal/onboarding"
    "github.com/congo-pay/onboarding/internal/profile"
    "github.com/congo-pay/onboarding/internal/screens"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
    Cfg      config.Config
    DB       *pgxpool.Pool
    Cache    *redis.Client
    Logger   *slog.Logger
    Registry *prometheus.Registry
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
    // Enforce DB/Redis presence outside of dev, even though config also checks.
    if !d.Cfg.IsDev() {
        if d.DB == nil {
            return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
        if d.Cache == nil {
            return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
    }
    if d.Logger == nil {
        d.Logger = logging.Discard()
    }
    if d.Registry == nil {
        d.Registry = prometheus.NewRegistry()
    }

    // Middlewares
    app.Use(recover.New())
    app.Use(middleware.RequestID())
    // Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
    app.Use(logger.New(logger.Config{
        Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
        TimeFormat: "15:04:05",
        TimeZone:   "Local",
    }))
    app.Use(middleware.Audit(d.Logger))

    // Health and metrics
    RegisterHealthRoutes(app, d)
    app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

    // Collaborators
    var identityRepo identity.Repository
    var profiles onboarding.ProfileStore
    if d.DB != nil {
        identityRepo = identity.NewPostgresRepository(d.DB)
        profiles = profile.NewPostgresStore(d.DB)
    } else {
        identityRepo = identity.NewMemoryRepository()
        profiles = profile.NewMemoryStore()
    }
    m := metrics.New(d.Registry)
    screenHandler := screens.NewHandler(screens.Deps{
        Auth:     identity.NewService(identityRepo),
        Profiles: profiles,
        Router:   navigation.NewLogRouter(d.Logger, m),
        Notifier: notification.NewLoggerNotifier(d.Logger),
        Logger:   d.Logger,
        Metrics:  m,
    }, d.Cfg.FormTTL)

    // API routes
    api := app.Group("/api/v1")
    api.Get("/ping", func(c *fiber.Ctx) error {
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "status":     "ok",
            "request_id": middleware.RequestIDFrom(c),
            "timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
        })
    })

    var lock fiber.Handler
    if d.Cache != nil {
        lock = middleware.SubmissionLock(d.Cache, d.Cfg.SubmissionLockTTL, d.Logger)
    }
    RegisterScreenRoutes(api, screenHandler, lock, middleware.SignInRateLimit(d.Cache, d.Cfg.SignInRateLimit, d.Logger))

    return nil
}
