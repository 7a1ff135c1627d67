package cep

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"

	"github.com/cadastro-app/cadastro/internal/logging"
	"github.com/cadastro-app/cadastro/internal/metrics"
)

type countingProvider struct {
	calls int
}

func (p *countingProvider) Lookup(ctx context.Context, cep string) (Address, error) {
	p.calls++
	return MockProvider{}.Lookup(ctx, cep)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("50000-000")
	if err != nil || got != "50000000" {
		t.Fatalf("expected 50000000, got %q (%v)", got, err)
	}
	for _, raw := range []string{"", "5000-000", "500000000", "abcdefgh"} {
		if _, err := Normalize(raw); !errors.Is(err, ErrInvalidCEP) {
			t.Fatalf("expected ErrInvalidCEP for %q, got %v", raw, err)
		}
	}
}

func TestServiceLookup(t *testing.T) {
	svc := NewService(MockProvider{})
	addr, err := svc.Lookup(context.Background(), "50000-000")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if addr.Cidade != "Recife" || addr.Estado != "PE" {
		t.Fatalf("unexpected address %+v", addr)
	}
	if _, err := svc.Lookup(context.Background(), "123"); !errors.Is(err, ErrInvalidCEP) {
		t.Fatalf("expected ErrInvalidCEP, got %v", err)
	}
}

func TestMockProviderHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (MockProvider{Delay: time.Second}).Lookup(ctx, "50000000"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCachedProviderReadThrough(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	m := metrics.New(prometheus.NewRegistry())
	next := &countingProvider{}
	p := NewCachedProvider(next, client, time.Hour, logging.Discard(), m)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := p.Lookup(ctx, "50000000"); err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected provider to be called once, got %d", next.calls)
	}
	if !mr.Exists(cachePrefix + "50000000") {
		t.Fatalf("expected cached entry")
	}
	if got := testutil.ToFloat64(m.CEPLookups.WithLabelValues("cache")); got != 2 {
		t.Fatalf("expected 2 cache hits, got %v", got)
	}
}

func TestCachedProviderFallsBackWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	next := &countingProvider{}
	p := NewCachedProvider(next, client, time.Hour, logging.Discard(), nil)

	addr, err := p.Lookup(context.Background(), "50000000")
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if addr.Bairro != "Centro" || next.calls != 1 {
		t.Fatalf("unexpected fallback result %+v calls=%d", addr, next.calls)
	}
}
