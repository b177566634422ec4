// Package requestid assigns each HTTP request a correlation ID that
// flows through the context and back out in the response headers.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// 独自型にしてコンテキストキーの衝突を避ける
type contextKey string

const (
	// RequestIDKey stores the ID in the request context.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader carries the ID on the wire.
	RequestIDHeader = "X-Request-ID"
)

// FromContext returns the request ID or "" when none is set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware keeps an incoming X-Request-ID or mints a UUID v4, then
// puts it in the context and mirrors it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
