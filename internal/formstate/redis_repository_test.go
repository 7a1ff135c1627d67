package formstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cadastro-app/cadastro/internal/form"
)

func setupRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedisRepository(client, time.Hour), mr
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	repo, mr := setupRedisRepository(t)
	ctx := context.Background()

	draft := Draft{ID: "d-1", TokenHash: []byte("hash"), CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, draft); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, draft); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}
	if ttl := mr.TTL(draftPrefix + "d-1"); ttl != time.Hour {
		t.Fatalf("expected ttl of one hour, got %v", ttl)
	}

	updated, err := repo.Update(ctx, "d-1", func(d *Draft) error {
		d.Data.Address.Cidade = "Recife"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Data.Address.Cidade != "Recife" {
		t.Fatalf("update result missing change: %+v", updated.Data.Address)
	}

	got, err := repo.Get(ctx, "d-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data.Address.Cidade != "Recife" || string(got.TokenHash) != "hash" {
		t.Fatalf("unexpected stored draft %+v", got)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisRepositoryUpdateAbort(t *testing.T) {
	repo, _ := setupRedisRepository(t)
	ctx := context.Background()
	_ = repo.Create(ctx, Draft{ID: "d-2"})

	abort := errors.New("abort")
	_, err := repo.Update(ctx, "d-2", func(d *Draft) error {
		d.Data.Personal.Nome = "ignored"
		return abort
	})
	if !errors.Is(err, abort) {
		t.Fatalf("expected abort error, got %v", err)
	}
	got, _ := repo.Get(ctx, "d-2")
	if got.Data.Personal.Nome != "" {
		t.Fatalf("aborted update was persisted")
	}
}

func TestServiceWithRedisRepository(t *testing.T) {
	repo, _ := setupRedisRepository(t)
	svc := newTestService(t, repo, nil)
	ctx := context.Background()

	draft, token, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	fillDraft(t, svc, draft.ID, token)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.UpdateAddress(ctx, draft.ID, token, form.AddressPatch{Bairro: strPtr("Boa Viagem")})
		}()
	}
	wg.Wait()

	submitted, err := svc.Submit(ctx, draft.ID, token)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Data.Address.Bairro != "Boa Viagem" || !submitted.Submitted() {
		t.Fatalf("unexpected submitted draft %+v", submitted)
	}
}
