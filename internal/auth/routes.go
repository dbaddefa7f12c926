package auth

import "github.com/go-chi/chi/v5"

// MountPublicRoutes exposes endpoints reachable without a token.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
}

// MountProtectedRoutes exposes endpoints requiring authentication.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}
