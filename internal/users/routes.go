package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaulta/vaulta/internal/shared"
)

// MountAuthRoutes registers login/logout endpoints. The rate limiter is
// applied by the caller so the limit lives in one place.
func (h *Handler) MountAuthRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/auth/login", h.Login)
	})
	r.Post("/auth/logout", h.Logout)
}

// MountRoutes registers the session-gated user endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Get("/auth/me", h.Me)
		r.Get("/members", h.Members)
	})
}
