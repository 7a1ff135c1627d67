package server

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"

    "github.com/cadastro-app/cadastro/internal/config"
    "github.com/cadastro-app/cadastro/internal/infra"
    "github.com/cadastro-app/cadastro/internal/routes"
)

const (
    readTimeout  = 30 * time.Second
    writeTimeout = 30 * time.Second
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
    app *fiber.App
    cfg config.Config
}

// New builds the HTTP server over the opened backends and delegates route
// wiring to routes.Setup.
func New(cfg config.Config, backends infra.Backends, logger *slog.Logger) (*Server, error) {
    app := fiber.New(fiber.Config{
        AppName:      cfg.AppName,
        ReadTimeout:  readTimeout,
        WriteTimeout: writeTimeout,
        ErrorHandler: errorHandler,
    })

    registry := prometheus.NewRegistry()
    registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

    if err := routes.Setup(app, routes.Deps{
        Cfg:      cfg,
        DB:       backends.DB,
        Cache:    backends.Cache,
        Logger:   logger,
        Registry: registry,
    }); err != nil {
        return nil, err
    }

    return &Server{app: app, cfg: cfg}, nil
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
    return s.app
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
    return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
    return s.app.ShutdownWithContext(ctx)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
    code := http.StatusInternalServerError
    var fe *fiber.Error
    if errors.As(err, &fe) {
        code = fe.Code
    }
    return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
