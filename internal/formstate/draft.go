// Package formstate keeps in-progress onboarding forms (drafts) between steps.
package formstate

import (
	"errors"
	"time"

	"github.com/cadastro-app/cadastro/internal/form"
)

var (
	ErrNotFound         = errors.New("draft not found")
	ErrUnauthorized     = errors.New("invalid draft token")
	ErrAlreadySubmitted = errors.New("draft already submitted")
)

// Draft is a form being filled in. TokenHash is the bcrypt hash of the resume
// token handed out on creation.
type Draft struct {
	ID          string     `json:"id"`
	Data        form.Data  `json:"data"`
	TokenHash   []byte     `json:"token_hash"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// Submitted reports whether the draft was already submitted.
func (d Draft) Submitted() bool {
	return d.SubmittedAt != nil
}

// ValidationError lists the failing fields per section.
type ValidationError struct {
	Sections map[string]form.FieldErrors
}

func (e *ValidationError) Error() string {
	return "form validation failed"
}
