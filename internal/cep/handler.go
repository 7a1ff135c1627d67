package cep

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the CEP lookup endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type lookupRequest struct {
	CEP string `json:"cep"`
}

// Lookup resolves the CEP in the request body to an address.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	var req lookupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	addr, err := h.service.Lookup(c.UserContext(), req.CEP)
	if err != nil {
		if errors.Is(err, ErrInvalidCEP) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(addr)
}
