package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/cadastro-app/cadastro/internal/formstate"
    "github.com/cadastro-app/cadastro/internal/middleware"
)

// RegisterFormRoutes wires draft endpoints. idempotency, when non-nil, guards submit.
func RegisterFormRoutes(r fiber.Router, h *formstate.Handler, idempotency fiber.Handler) {
    group := r.Group("/forms")
    group.Post("", h.Create)

    draft := group.Group("/:id", middleware.DraftToken())
    draft.Get("", h.Get)
    draft.Patch("/personal", h.UpdatePersonal)
    draft.Patch("/address", h.UpdateAddress)
    draft.Patch("/professional", h.UpdateProfessional)
    if idempotency != nil {
        draft.Post("/submit", idempotency, h.Submit)
    } else {
        draft.Post("/submit", h.Submit)
    }
}
