package infra

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/cadastro-app/cadastro/internal/config"
	"github.com/cadastro-app/cadastro/internal/logging"
)

func TestOpenWithoutBackends(t *testing.T) {
	b, err := Open(context.Background(), config.Config{AppEnv: "development"}, logging.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if b.DB != nil || b.Cache != nil {
		t.Fatalf("expected no backends, got %+v", b)
	}
	b.Close(logging.Discard())
}

func TestOpenRedisOnly(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	b, err := Open(context.Background(), config.Config{RedisURL: "redis://" + mr.Addr() + "/0"}, logging.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close(logging.Discard())
	if b.Cache == nil || b.DB != nil {
		t.Fatalf("expected redis only, got %+v", b)
	}
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not a url"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := NewPostgresPool(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty database url")
	}
}
