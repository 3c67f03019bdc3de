package viewcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "wishly:view:"
	redisVersionPrefix = "wishly:view-version:"
)

// Redis общий кэш для нескольких экземпляров сервиса.
type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("redis.Get: %w", err)
	}

	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}

func (r *Redis) Version(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Get(ctx, redisVersionPrefix+key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("redis.Get: %w", err)
	}

	return n, nil
}

// Bump увеличивает поколения всех ключей одним пайплайном.
func (r *Redis) Bump(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, key := range keys {
			p.Incr(ctx, redisVersionPrefix+key)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("redis.Incr: %w", err)
	}

	return nil
}
