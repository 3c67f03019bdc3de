package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"wishly/pkg/logx"
)

// Redis общий клиент кэша представлений. Очередь asynq ходит в тот же
// инстанс со своим пулом.
type Redis struct {
	value          *redis.Client
	Username       string
	Password       string
	Address        string
	DatabaseNumber int
	PoolSize       int
	init           sync.Once
}

func (r *Redis) Client(ctx context.Context) *redis.Client {
	r.init.Do(func() {
		r.value = redis.NewClient(&redis.Options{
			//nolint:exhaustruct
			Network:  "tcp",
			Addr:     r.Address,
			Username: r.Username,
			Password: r.Password,
			DB:       r.DatabaseNumber,
			PoolSize: r.PoolSize,
		})

		lo.Must0(r.value.Ping(ctx).Err())

		logger(ctx).Info("redis connected", r.attrs()...)
	})

	return r.value
}

// Check проверка готовности для /ready.
func (r *Redis) Check(ctx context.Context) error {
	if err := r.value.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis.Ping: %w", err)
	}

	return nil
}

func (r *Redis) Close(ctx context.Context) {
	if err := r.value.Close(); err != nil {
		logger(ctx).Error("redisClient.Close", logx.Error(err))
	}

	logger(ctx).Info("redis disconnected", r.attrs()...)
}

func (r *Redis) attrs() []any {
	return []any{
		slog.String("address", r.Address),
		slog.Int("database", r.DatabaseNumber),
	}
}
