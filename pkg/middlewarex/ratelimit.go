package middlewarex

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"wishly/internal/domain"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/httpx/reply"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per caller. Idle buckets expire.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL),
		limit:    rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:    burst,
	}
}

func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}

	l.limiters.SetDefault(key, limiter)

	return limiter.(*rate.Limiter).Allow() //nolint:forcetypeassert
}

// RateLimit keys buckets by the authenticated user, falling back to the
// client address.
func RateLimit(limiter *RateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if !limiter.Allow(rateLimitKey(r)) {
				reply.Error(ctx, w, domain.NewError(errcodes.TooManyRequests, "Too many requests, slow down"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if userID, err := contextx.UserIDFromContext(r.Context()); err == nil {
		return "user:" + userID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}

	return "ip:" + host
}
