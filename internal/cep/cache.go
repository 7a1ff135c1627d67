package cep

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cadastro-app/cadastro/internal/metrics"
)

const cachePrefix = "cep:v1:"

// CachedProvider is a read-through Redis cache in front of another Provider.
// Cache failures are logged and the wrapped provider is used instead.
type CachedProvider struct {
	next    Provider
	cache   *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewCachedProvider(next Provider, cache *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl, logger: logger, metrics: m}
}

func (p *CachedProvider) Lookup(ctx context.Context, cep string) (Address, error) {
	key := cachePrefix + cep

	cached, err := p.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var addr Address
		if err := json.Unmarshal(cached, &addr); err == nil {
			p.metrics.ObserveCEPLookup("cache")
			return addr, nil
		}
		p.logger.Warn("discarding undecodable cached cep", slog.String("cep", cep))
	case !errors.Is(err, redis.Nil):
		p.logger.Warn("cep cache lookup failed", slog.String("cep", cep), slog.Any("error", err))
	}

	addr, err := p.next.Lookup(ctx, cep)
	if err != nil {
		return Address{}, err
	}
	p.metrics.ObserveCEPLookup("provider")

	payload, err := json.Marshal(addr)
	if err != nil {
		return addr, nil
	}
	if err := p.cache.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		p.logger.Warn("cep cache store failed", slog.String("cep", cep), slog.Any("error", err))
	}
	return addr, nil
}
