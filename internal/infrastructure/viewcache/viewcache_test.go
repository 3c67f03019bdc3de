package viewcache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"wishly/internal/infrastructure/viewcache"
)

type backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Version(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, keys ...string) error
}

func exercise(t *testing.T, c backend) {
	t.Helper()

	rq := require.New(t)
	ctx := context.Background()

	// общий Redis между прогонами: ключи уникальны для каждого прогона
	suffix := xid.New().String()
	publicKey, dashboardKey := "/e/"+suffix, "/dashboard/"+suffix

	_, ok, err := c.Get(ctx, publicKey)
	rq.NoError(err)
	rq.False(ok)

	rq.NoError(c.Set(ctx, publicKey, []byte(`{"giftCount":3}`), time.Minute))
	rq.NoError(c.Set(ctx, dashboardKey, []byte(`{"events":[]}`), time.Minute))

	got, ok, err := c.Get(ctx, publicKey)
	rq.NoError(err)
	rq.True(ok)
	rq.JSONEq(`{"giftCount":3}`, string(got))

	version, err := c.Version(ctx, publicKey)
	rq.NoError(err)
	rq.Zero(version)

	rq.NoError(c.Bump(ctx, publicKey, dashboardKey))
	rq.NoError(c.Bump(ctx, publicKey))

	version, err = c.Version(ctx, publicKey)
	rq.NoError(err)
	rq.EqualValues(2, version)

	version, err = c.Version(ctx, dashboardKey)
	rq.NoError(err)
	rq.EqualValues(1, version)

	version, err = c.Version(ctx, "/events/"+suffix)
	rq.NoError(err)
	rq.Zero(version)
}

func TestLocal(t *testing.T) {
	exercise(t, viewcache.NewLocal())
}

func TestLocalExpiration(t *testing.T) {
	rq := require.New(t)
	c := viewcache.NewLocal()

	rq.NoError(c.Set(context.Background(), "/events/1", []byte("{}"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := c.Get(context.Background(), "/events/1")
	rq.NoError(err)
	rq.False(ok)
}

func TestRedis(t *testing.T) {
	address := os.Getenv("TEST_REDIS_ADDRESS")
	if address == "" {
		t.Skip("TEST_REDIS_ADDRESS is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: address}) //nolint:exhaustruct
	t.Cleanup(func() { client.Close() })

	exercise(t, viewcache.NewRedis(client))
}
