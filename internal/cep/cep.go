// Package cep resolves Brazilian postal codes (CEP) to street addresses.
package cep

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const cepLength = 8

// ErrInvalidCEP is returned when the input does not hold exactly eight digits.
var ErrInvalidCEP = errors.New("invalid CEP")

// Address is the part of a residential address derivable from a CEP.
type Address struct {
	Rua    string `json:"rua"`
	Bairro string `json:"bairro"`
	Cidade string `json:"cidade"`
	Estado string `json:"estado"`
}

// Provider resolves a normalized CEP.
type Provider interface {
	Lookup(ctx context.Context, cep string) (Address, error)
}

// Normalize strips formatting from raw and checks the digit count.
func Normalize(raw string) (string, error) {
	out := make([]byte, 0, cepLength)
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	if len(out) != cepLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidCEP, raw)
	}
	return string(out), nil
}

// MockProvider answers every lookup with the same address after Delay.
type MockProvider struct {
	Delay time.Duration
}

var mockAddress = Address{
	Rua:    "Av. Exemplo, 123",
	Bairro: "Centro",
	Cidade: "Recife",
	Estado: "PE",
}

func (p MockProvider) Lookup(ctx context.Context, _ string) (Address, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Address{}, ctx.Err()
		case <-timer.C:
		}
	}
	return mockAddress, nil
}

// Service normalizes input and delegates to a Provider.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Lookup resolves raw, which may carry the usual 00000-000 formatting.
func (s *Service) Lookup(ctx context.Context, raw string) (Address, error) {
	code, err := Normalize(raw)
	if err != nil {
		return Address{}, err
	}
	addr, err := s.provider.Lookup(ctx, code)
	if err != nil {
		return Address{}, fmt.Errorf("lookup cep %s: %w", code, err)
	}
	return addr, nil
}
