package blog

import (
	"errors"
	"net/http"

	"blogsmith/internal/handler/http/respond"
)

// Register wires the blog endpoints onto mux.
// /generate is registered without a method pattern: the method check
// runs before the session gate, so an unauthenticated GET still gets
// the documented 405 body rather than a 401.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.Handle("/generate", postOnly(h.Sessions.RequireAPI(http.HandlerFunc(h.Generate))))
	mux.Handle("GET /blogs", h.Sessions.RequirePage(http.HandlerFunc(h.List)))
	mux.Handle("GET /blogs/{id}", h.Sessions.RequirePage(http.HandlerFunc(h.Detail)))
	mux.Handle("/", h.Sessions.Optional(http.HandlerFunc(h.Home)))
}

// postOnly rejects everything but POST before any other middleware runs.
func postOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.Error(w, http.StatusMethodNotAllowed, errors.New("Invalid request method"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
