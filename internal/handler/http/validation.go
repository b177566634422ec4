package http

import (
	"net/http"
)

// 入力の上限。セッションCookieは1KB未満なので8KBで十分余裕がある
const (
	maxCookieHeaderLen = 8192
	maxPathLen         = 2048
	maxInputBody       = 10 << 20
)

// InputValidation rejects requests with oversized cookie headers or
// paths before they reach routing, and caps the body at 10 MiB as a
// backstop behind the per-route limit.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Cookie")) > maxCookieHeaderLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"cookie header too large"}`))
				return
			}

			if len(r.URL.Path) > maxPathLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxInputBody)
			next.ServeHTTP(w, r)
		})
	}
}
