package formstate

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu     sync.Mutex
	drafts map[string]Draft
}

// NewMemoryRepository builds an in-memory draft store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{drafts: make(map[string]Draft)}
}

func (r *memoryRepository) Create(_ context.Context, draft Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.drafts[draft.ID]; exists {
		return errors.New("draft exists")
	}
	r.drafts[draft.ID] = clone(draft)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[id]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return clone(draft), nil
}

func (r *memoryRepository) Update(_ context.Context, id string, fn UpdateFunc) (Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.drafts[id]
	if !ok {
		return Draft{}, ErrNotFound
	}
	draft := clone(stored)
	if err := fn(&draft); err != nil {
		return Draft{}, err
	}
	draft.ID = stored.ID
	r.drafts[stored.ID] = clone(draft)
	return draft, nil
}

// clone copies the pointer and slice fields so callers cannot alias stored state.
func clone(d Draft) Draft {
	if d.SubmittedAt != nil {
		t := *d.SubmittedAt
		d.SubmittedAt = &t
	}
	d.TokenHash = append([]byte(nil), d.TokenHash...)
	return d
}
