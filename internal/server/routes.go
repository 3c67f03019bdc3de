package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wishly/pkg/httpx/reply"
	"wishly/pkg/middlewarex"
)

func (s Server) RegisterRoutes(r chi.Router, claimLimiter *middlewarex.RateLimiter) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// public zone
			r.Get("/e/{slug}", handler(s.getV1PublicEvent))

			// claims report Unauthenticated themselves, the limiter keys anonymous callers by address
			r.Group(func(r chi.Router) {
				r.Use(middlewarex.RateLimit(claimLimiter))

				r.Post("/gifts/{id}/claim", handler(s.postV1GiftClaim))
				r.Delete("/gifts/{id}/claim", handler(s.deleteV1GiftClaim))
			})

			// authorized zone
			r.Group(func(r chi.Router) {
				r.Use(middlewarex.RequireUser)

				r.Post("/e/{slug}/suggestions", handler(s.postV1PublicEventSuggestion))
				r.Get("/dashboard", handler(s.getV1Dashboard))

				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", handler(s.getV1Notifications))
					r.Patch("/read-all", handler(s.patchV1NotificationsReadAll))
					r.Patch("/{id}", handler(s.patchV1Notification))
				})

				r.Route("/events", func(r chi.Router) {
					r.Post("/", handler(s.postV1Event))
					r.Get("/{id}", handler(s.getV1Event))
					r.Patch("/{id}", handler(s.patchV1Event))
					r.Delete("/{id}", handler(s.deleteV1Event))
					r.Post("/{id}/toggle-active", handler(s.postV1EventToggleActive))
					r.Post("/{id}/gifts", handler(s.postV1EventGift))
					r.Get("/{id}/suggestions", handler(s.getV1EventSuggestions))
				})

				r.Patch("/gifts/{id}", handler(s.patchV1Gift))
				r.Delete("/gifts/{id}", handler(s.deleteV1Gift))

				r.Post("/suggestions/{id}/approve", handler(s.postV1SuggestionApprove))
				r.Post("/suggestions/{id}/ignore", handler(s.postV1SuggestionIgnore))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
