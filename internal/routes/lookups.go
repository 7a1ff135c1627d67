package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/cadastro-app/cadastro/internal/cep"
    "github.com/cadastro-app/cadastro/internal/form"
    "github.com/cadastro-app/cadastro/internal/professions"
)

// RegisterLookupRoutes wires the read-only data the form needs to render:
// its schema, the professions list and the CEP lookup.
func RegisterLookupRoutes(r fiber.Router, schema form.Schema, profs *professions.Service, cepHandler *cep.Handler) {
    r.Get("/schema", func(c *fiber.Ctx) error {
        return c.JSON(schema)
    })
    r.Get("/professions", func(c *fiber.Ctx) error {
        return c.JSON(profs.List(c.UserContext()))
    })
    r.Get("/profissoes", func(c *fiber.Ctx) error {
        return c.JSON(profs.List(c.UserContext()))
    })
    r.Post("/cep", cepHandler.Lookup)
}
