package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wishly/pkg/contextx"
	"wishly/pkg/logx"
	"wishly/pkg/middlewarex"
)

const (
	defaultClaimsPerMinute = 10
	defaultClaimBurst      = 5
)

type callerResolver interface {
	ResolveCaller(r *http.Request) (contextx.UserID, error)
}

// RouterOptions зависимости цепочки middleware.
type RouterOptions struct {
	Resolver       callerResolver
	Masker         logx.SensitiveDataMaskerInterface
	LogFieldMaxLen int
	ClaimLimiter   *middlewarex.RateLimiter
}

// NewRouter собирает корневой обработчик API.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	if opts.Masker == nil {
		opts.Masker = logx.NewSensitiveDataMasker()
	}

	if opts.ClaimLimiter == nil {
		opts.ClaimLimiter = middlewarex.NewRateLimiter(defaultClaimsPerMinute, defaultClaimBurst)
	}

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.HTTPLogging(opts.Masker, opts.LogFieldMaxLen),
		middlewarex.Authenticate(opts.Resolver),
	)

	s.RegisterRoutes(r, opts.ClaimLimiter)

	return r
}
