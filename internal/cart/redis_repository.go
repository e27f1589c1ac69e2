package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps carts as a serialized ordered line list in Redis.
// It backs guest carts: durable across restarts, no expiry, cleared only by
// an explicit Clear (typically the post-sign-in transfer).
type RedisRepository struct {
	cache *redis.Client
}

// NewRedisRepository builds a Redis-backed cart repository.
func NewRedisRepository(cache *redis.Client) *RedisRepository {
	return &RedisRepository{cache: cache}
}

// Load reads the cart for the scope, returning an empty cart on a key miss.
func (r *RedisRepository) Load(ctx context.Context, scope Scope) (Cart, error) {
	payload, err := r.cache.Get(ctx, scope.Key()).Result()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}

	var lines []Line
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		// A corrupted entry is unrecoverable; start the scope over empty.
		_ = r.cache.Del(ctx, scope.Key()).Err()
		return Cart{}, nil
	}
	return Cart{Lines: lines}, nil
}

// Save overwrites the stored cart for the scope.
func (r *RedisRepository) Save(ctx context.Context, scope Scope, c Cart) error {
	if c.IsEmpty() {
		return r.Clear(ctx, scope)
	}
	payload, err := json.Marshal(c.Lines)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, scope.Key(), payload, 0).Err()
}

// Clear deletes the stored cart for the scope.
func (r *RedisRepository) Clear(ctx context.Context, scope Scope) error {
	return r.cache.Del(ctx, scope.Key()).Err()
}
