package formstate

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cadastro-app/cadastro/internal/form"
	"github.com/cadastro-app/cadastro/internal/middleware"
)

// Handler exposes draft endpoints. Every route except Create expects the
// middleware.DraftToken guard in front of it.
type Handler struct {
	service *Service
}

// NewHandler constructs a draft HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type draftResponse struct {
	ID          string     `json:"id"`
	Token       string     `json:"token,omitempty"`
	Data        form.Data  `json:"data"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func toResponse(d Draft) draftResponse {
	return draftResponse{ID: d.ID, Data: d.Data, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt, SubmittedAt: d.SubmittedAt}
}

// Create starts a new draft. The token in the response is shown only once.
func (h *Handler) Create(c *fiber.Ctx) error {
	draft, token, err := h.service.Create(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	resp := toResponse(draft)
	resp.Token = token
	return c.Status(http.StatusCreated).JSON(resp)
}

// Get returns the current draft.
func (h *Handler) Get(c *fiber.Ctx) error {
	draft, err := h.service.Get(c.UserContext(), c.Params("id"), middleware.DraftTokenFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toResponse(draft))
}

func (h *Handler) UpdatePersonal(c *fiber.Ctx) error {
	var patch form.PersonalPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	draft, err := h.service.UpdatePersonal(c.UserContext(), c.Params("id"), middleware.DraftTokenFrom(c), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toResponse(draft))
}

func (h *Handler) UpdateAddress(c *fiber.Ctx) error {
	var patch form.AddressPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	draft, err := h.service.UpdateAddress(c.UserContext(), c.Params("id"), middleware.DraftTokenFrom(c), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toResponse(draft))
}

func (h *Handler) UpdateProfessional(c *fiber.Ctx) error {
	var patch form.ProfessionalPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	draft, err := h.service.UpdateProfessional(c.UserContext(), c.Params("id"), middleware.DraftTokenFrom(c), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toResponse(draft))
}

// Submit validates the whole form and finalizes the draft.
func (h *Handler) Submit(c *fiber.Ctx) error {
	draft, err := h.service.Submit(c.UserContext(), c.Params("id"), middleware.DraftTokenFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toResponse(draft))
}

// respondError writes validation failures as 422 with the field errors and
// maps the sentinel errors to their status codes.
func respondError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"errors": verr.Sections})
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAlreadySubmitted):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
