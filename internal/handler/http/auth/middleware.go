package auth

import (
	"context"
	"errors"
	"net/http"

	"blogsmith/internal/handler/http/respond"
)

type ctxKey string

const ctxSession ctxKey = "session"

// SessionFromContext returns the session stored by the middleware,
// or nil if the request is unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxSession).(*Session)
	return s
}

// RequirePage protects an HTML page. Unauthenticated requests are
// redirected to the login form.
func (m *SessionManager) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Validate(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), ctxSession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAPI protects a JSON endpoint. Unauthenticated requests get a
// 401 response instead of a redirect.
func (m *SessionManager) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Validate(r)
		if err != nil {
			respond.SafeError(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}
		ctx := context.WithValue(r.Context(), ctxSession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional attaches the session to the context when present but never
// blocks the request. Used by pages that render differently for
// logged-in visitors.
func (m *SessionManager) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, err := m.Validate(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), ctxSession, session))
		}
		next.ServeHTTP(w, r)
	})
}
