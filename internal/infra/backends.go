package infra

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cadastro-app/cadastro/internal/config"
)

// Backends holds the optional external stores. A nil field means the
// service runs with in-memory fallbacks.
type Backends struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

// Open connects to every backend configured in cfg and applies migrations
// when enabled. On error, anything already opened is closed.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Backends, error) {
	var b Backends

	if cfg.DatabaseURL != "" {
		db, err := NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return Backends{}, err
		}
		b.DB = db
		if cfg.RunMigrations {
			if err := Migrate(ctx, db, logger); err != nil {
				b.Close(logger)
				return Backends{}, err
			}
		}
	} else {
		logger.Warn("DATABASE_URL not set, drafts are kept in memory or redis")
	}

	if cfg.RedisURL != "" {
		cache, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			b.Close(logger)
			return Backends{}, err
		}
		b.Cache = cache
	} else {
		logger.Warn("REDIS_URL not set, idempotency and cep caching are disabled")
	}

	return b, nil
}

// Close releases every open backend.
func (b Backends) Close(logger *slog.Logger) {
	if b.Cache != nil {
		if err := b.Cache.Close(); err != nil {
			logger.Warn("close redis", "error", err)
		}
	}
	if b.DB != nil {
		b.DB.Close()
	}
}
