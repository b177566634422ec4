package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout caps the total time a request may spend in the handler chain.
// When the deadline passes before the handler finishes, the client gets
// 504 and any later writes from the handler goroutine are discarded.
//
// The generate pipeline (download, transcribe, generate) can run for
// minutes, so the configured duration must cover the slowest stage.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := &deadlineWriter{inner: w}
			done := make(chan struct{})

			go func() {
				next.ServeHTTP(dw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				dw.expire()
			}
		})
	}
}

// deadlineWriter serializes writes between the handler goroutine and
// the timeout path. After expire() wins the race, handler writes
// return http.ErrHandlerTimeout.
type deadlineWriter struct {
	inner   http.ResponseWriter
	mu      sync.Mutex
	expired bool
	wrote   bool
}

func (dw *deadlineWriter) Header() http.Header { return dw.inner.Header() }

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.expired || dw.wrote {
		return
	}
	dw.wrote = true
	dw.inner.WriteHeader(code)
}

func (dw *deadlineWriter) Write(p []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !dw.wrote {
		dw.wrote = true
		dw.inner.WriteHeader(http.StatusOK)
	}
	return dw.inner.Write(p)
}

// expire marks the response as timed out and, if nothing was written
// yet, emits the 504 body.
func (dw *deadlineWriter) expire() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.expired = true
	if dw.wrote {
		return
	}
	dw.inner.Header().Set("Content-Type", "application/json")
	dw.inner.WriteHeader(http.StatusGatewayTimeout)
	_, _ = dw.inner.Write([]byte(`{"error":"request timeout"}`))
}
