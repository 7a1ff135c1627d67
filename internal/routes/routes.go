package routes

import (
    "fmt"
    "log/slog"
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/logger"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/redis/go-redis/v9"

    "github.com/cadastro-app/cadastro/internal/cep"
    "github.com/cadastro-app/cadastro/internal/config"
    "github.com/cadastro-app/cadastro/internal/form"
    "github.com/cadastro-app/cadastro/internal/formstate"
    "github.com/cadastro-app/cadastro/internal/metrics"
    "github.com/cadastro-app/cadastro/internal/middleware"
    "github.com/cadastro-app/cadastro/internal/notification"
    "github.com/cadastro-app/cadastro/internal/professions"
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
    if !d.Cfg.IsDev() {
        if d.DB == nil {
            return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
        if d.Cache == nil {
            return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
    }
    if d.Registry == nil {
        d.Registry = prometheus.NewRegistry()
    }

    // Middlewares
    app.Use(recover.New())
    app.Use(middleware.RequestID())
    app.Use(logger.New(logger.Config{
        Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
        TimeFormat: "15:04:05",
        TimeZone:   "Local",
    }))
    app.Use(middleware.Audit(d.Logger))

    RegisterHealthRoutes(app, d)
    RegisterMetricsRoute(app, d.Registry)

    // Services and handlers
    m := metrics.New(d.Registry)
    schema := form.DefaultSchema()
    professionSvc := professions.NewService()
    validator, err := form.NewValidator(schema, professionSvc)
    if err != nil {
        return err
    }

    var draftRepo formstate.Repository
    switch {
    case d.DB != nil:
        draftRepo = formstate.NewPostgresRepository(d.DB)
    case d.Cache != nil:
        draftRepo = formstate.NewRedisRepository(d.Cache, d.Cfg.DraftTTL)
    default:
        draftRepo = formstate.NewMemoryRepository()
    }
    notifier := notification.NewLoggerNotifier(d.Logger)
    draftSvc := formstate.NewService(draftRepo, validator, notifier, m)

    var cepProvider cep.Provider = cep.MockProvider{}
    if d.Cache != nil {
        cepProvider = cep.NewCachedProvider(cepProvider, d.Cache, d.Cfg.CEPCacheTTL, d.Logger, m)
    }
    cepHandler := cep.NewHandler(cep.NewService(cepProvider))

    api := app.Group("/api/v1")
    api.Get("/ping", func(c *fiber.Ctx) error {
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "status":     "ok",
            "request_id": middleware.RequestIDFrom(c),
            "timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
        })
    })

    RegisterCPFRoutes(api, m, middleware.RateLimit(d.Cache, "cpf", d.Cfg.ValidateRateLimit))
    RegisterLookupRoutes(api, schema, professionSvc, cepHandler)
    // Paths the front-end mock backend answered on.
    RegisterLookupRoutes(app.Group("/mock"), schema, professionSvc, cepHandler)

    var idempotency fiber.Handler
    if d.Cache != nil {
        idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
    }
    RegisterFormRoutes(api, formstate.NewHandler(draftSvc), idempotency)

    return nil
}
