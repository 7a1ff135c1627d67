package professions

import (
	"context"
	"slices"
)

var defaultCatalog = []string{
	"Desenvolvedor Front-end",
	"Desenvolvedor Back-end",
	"Designer UI/UX",
	"Analista de QA",
	"Gerente de Produto",
}

// Service serves the list of selectable professions.
type Service struct {
	names []string
}

// NewService builds a catalog from names, or the default list when none are given.
func NewService(names ...string) *Service {
	if len(names) == 0 {
		names = defaultCatalog
	}
	return &Service{names: slices.Clone(names)}
}

// List returns a copy of the catalog in display order.
func (s *Service) List(_ context.Context) []string {
	return slices.Clone(s.names)
}

// Contains reports whether name is an offered profession.
func (s *Service) Contains(name string) bool {
	return slices.Contains(s.names, name)
}
