package formstate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cadastro-app/cadastro/internal/cpf"
	"github.com/cadastro-app/cadastro/internal/form"
	"github.com/cadastro-app/cadastro/internal/metrics"
	"github.com/cadastro-app/cadastro/internal/notification"
)

const tokenBytes = 32

// Service manages the draft lifecycle: create, step-by-step updates, submit.
type Service struct {
	repo      Repository
	validator *form.Validator
	notifier  notification.Notifier
	metrics   *metrics.Metrics
	tokenCost int
	now       func() time.Time
}

// NewService creates a draft service. notifier and m may be nil.
func NewService(repo Repository, validator *form.Validator, notifier notification.Notifier, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		metrics:   m,
		tokenCost: bcrypt.DefaultCost,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create starts an empty draft and returns it with its resume token. The
// token is only returned here; the draft keeps its bcrypt hash.
func (s *Service) Create(ctx context.Context) (Draft, string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return Draft{}, "", fmt.Errorf("generate draft token: %w", err)
	}
	token := hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(token), s.tokenCost)
	if err != nil {
		return Draft{}, "", err
	}

	now := s.now()
	draft := Draft{
		ID:        uuid.New().String(),
		TokenHash: hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, draft); err != nil {
		return Draft{}, "", err
	}
	s.metrics.IncrementDraftsCreated()
	return draft, token, nil
}

// Get returns the draft if token matches.
func (s *Service) Get(ctx context.Context, id, token string) (Draft, error) {
	draft, err := s.repo.Get(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	if err := authorize(draft, token); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// UpdatePersonal merges patch into the personal section.
func (s *Service) UpdatePersonal(ctx context.Context, id, token string, patch form.PersonalPatch) (Draft, error) {
	if patch.CPF != nil {
		s.metrics.ObserveCPF(cpf.IsValid(*patch.CPF))
	}
	return s.update(ctx, id, token, form.SectionPersonal, func(d *Draft) any {
		patch.Apply(&d.Data.Personal)
		return d.Data.Personal
	})
}

// UpdateAddress merges patch into the address section.
func (s *Service) UpdateAddress(ctx context.Context, id, token string, patch form.AddressPatch) (Draft, error) {
	return s.update(ctx, id, token, form.SectionAddress, func(d *Draft) any {
		patch.Apply(&d.Data.Address)
		return d.Data.Address
	})
}

// UpdateProfessional merges patch into the professional section.
func (s *Service) UpdateProfessional(ctx context.Context, id, token string, patch form.ProfessionalPatch) (Draft, error) {
	return s.update(ctx, id, token, form.SectionProfessional, func(d *Draft) any {
		patch.Apply(&d.Data.Professional)
		return d.Data.Professional
	})
}

// update applies a patch and rejects it when a filled-in field breaks a
// rule. Missing required fields are tolerated until Submit.
func (s *Service) update(ctx context.Context, id, token, section string, apply func(d *Draft) any) (Draft, error) {
	return s.repo.Update(ctx, id, func(d *Draft) error {
		if err := authorize(*d, token); err != nil {
			return err
		}
		if d.Submitted() {
			return ErrAlreadySubmitted
		}

		errs, err := s.validator.ValidateSection(section, apply(d))
		if err != nil {
			return err
		}
		for field, fe := range errs {
			if fe.Key == form.KeyRequired {
				delete(errs, field)
			}
		}
		if len(errs) > 0 {
			return &ValidationError{Sections: map[string]form.FieldErrors{section: errs}}
		}

		d.UpdatedAt = s.now()
		return nil
	})
}

// Submit validates every section and marks the draft submitted. It returns a
// *ValidationError listing the failing fields when the form is incomplete.
func (s *Service) Submit(ctx context.Context, id, token string) (Draft, error) {
	draft, err := s.repo.Update(ctx, id, func(d *Draft) error {
		if err := authorize(*d, token); err != nil {
			return err
		}
		if d.Submitted() {
			return ErrAlreadySubmitted
		}

		errs, err := s.validator.ValidateAll(d.Data)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			return &ValidationError{Sections: errs}
		}

		now := s.now()
		d.SubmittedAt = &now
		d.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Draft{}, err
	}

	s.metrics.IncrementFormsSubmitted()
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:      notification.KindFormSubmitted,
			DraftID:   draft.ID,
			Recipient: draft.Data.Personal.Nome,
			Summary:   fmt.Sprintf("%s (%s) submitted the onboarding form", draft.Data.Personal.Nome, draft.Data.Professional.Profissao),
		})
	}
	return draft, nil
}

func authorize(d Draft, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(d.TokenHash, []byte(token)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrUnauthorized
		}
		return fmt.Errorf("verify draft token: %w", err)
	}
	return nil
}
