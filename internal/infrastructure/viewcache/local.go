// Package viewcache хранит отрендеренные read-модели страниц (JSON) по ключу пути.
package viewcache

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	cleanupInterval = time.Minute
	versionPrefix   = "version:"
)

// Local кэш в памяти процесса. Подходит для одного экземпляра сервиса.
type Local struct {
	items *cache.Cache
}

func NewLocal() *Local {
	return &Local{
		items: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := l.items.Get(key)
	if !ok {
		return nil, false, nil
	}

	b, ok := v.([]byte)

	return b, ok, nil
}

func (l *Local) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	l.items.Set(key, payload, ttl)

	return nil
}

// Version текущее поколение ключа; 0, если ключ ни разу не сбрасывался.
func (l *Local) Version(_ context.Context, key string) (int64, error) {
	v, ok := l.items.Get(versionPrefix + key)
	if !ok {
		return 0, nil
	}

	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("version of %q has type %T", key, v)
	}

	return n, nil
}

// Bump переводит ключи на следующее поколение.
func (l *Local) Bump(_ context.Context, keys ...string) error {
	for _, key := range keys {
		vk := versionPrefix + key

		// Add не перезаписывает существующий счётчик.
		_ = l.items.Add(vk, int64(0), cache.NoExpiration)

		if _, err := l.items.IncrementInt64(vk, 1); err != nil {
			return fmt.Errorf("items.IncrementInt64: %w", err)
		}
	}

	return nil
}
