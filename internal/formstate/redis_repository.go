package formstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	draftPrefix       = "draft:v1:"
	maxUpdateAttempts = 5
)

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisRepository keeps drafts as JSON values that expire ttl after the last write.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func (r *RedisRepository) Create(ctx context.Context, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	ok, err := r.client.SetNX(ctx, draftPrefix+draft.ID, payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("draft exists")
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, id string) (Draft, error) {
	return r.load(ctx, r.client, id)
}

// Update uses WATCH/MULTI so concurrent writers to the same draft retry
// instead of overwriting each other.
func (r *RedisRepository) Update(ctx context.Context, id string, fn UpdateFunc) (Draft, error) {
	key := draftPrefix + id
	var result Draft

	txf := func(tx *redis.Tx) error {
		draft, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(&draft); err != nil {
			return err
		}
		payload, err := json.Marshal(draft)
		if err != nil {
			return fmt.Errorf("encode draft: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			result = draft
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Draft{}, err
		}
		return result, nil
	}
	return Draft{}, fmt.Errorf("update draft %s: too much contention", id)
}

func (r *RedisRepository) load(ctx context.Context, c getter, id string) (Draft, error) {
	raw, err := c.Get(ctx, draftPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, err
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return draft, nil
}
