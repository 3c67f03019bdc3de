package middlewarex

import (
	"log/slog"
	"net/http"

	"wishly/internal/domain"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/httpx/reply"
	"wishly/pkg/logx"
)

type callerResolver interface {
	ResolveCaller(r *http.Request) (contextx.UserID, error)
}

// Authenticate resolves the caller and stores it in the request context.
// Requests without valid credentials continue anonymously; routes that need
// a caller are wrapped with RequireUser.
func Authenticate(resolver callerResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := resolver.ResolveCaller(r)
			if err != nil {
				logger(ctx).Warn("resolver.ResolveCaller", logx.Error(err))
			}

			if userID != "" {
				ctx = contextx.WithUserID(ctx, userID)
				ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldUserID, userID.String())))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, err := contextx.UserIDFromContext(ctx); err != nil {
			reply.Error(ctx, w, domain.WrapError(err, errcodes.Unauthenticated, "Please sign in"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
