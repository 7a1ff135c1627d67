package routes

import (
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/cadastro-app/cadastro/internal/cpf"
    "github.com/cadastro-app/cadastro/internal/metrics"
)

// RegisterCPFRoutes exposes the standalone CPF check used by the form while typing.
func RegisterCPFRoutes(r fiber.Router, m *metrics.Metrics, rateLimiter fiber.Handler) {
    handler := func(c *fiber.Ctx) error {
        var req struct {
            CPF *string `json:"cpf"`
        }
        if err := c.BodyParser(&req); err != nil {
            return fiber.NewError(http.StatusBadRequest, err.Error())
        }
        verdict := cpf.CheckOptional(req.CPF)
        m.ObserveCPF(verdict.Valid)

        resp := fiber.Map{"valid": verdict.Valid}
        if !verdict.Valid {
            resp["reason"] = verdict.Reason.String()
            resp["error"] = cpf.ErrorKey
        }
        return c.Status(http.StatusOK).JSON(resp)
    }

    if rateLimiter != nil {
        r.Post("/cpf/validate", rateLimiter, handler)
    } else {
        r.Post("/cpf/validate", handler)
    }
}
