package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/itadmin/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Prometheus records request duration and count per route. The chi route
// pattern labels matched requests; unmatched paths fall back to
// metrics.NormalizePath.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrap := newResponseWriter(w)
		next.ServeHTTP(wrap, r)
		if r.URL.Path == "/metrics" {
			return
		}
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		if path == "" {
			path = "/"
		}
		metrics.RecordRequest(r.Method, path, wrap.status, time.Since(start).Seconds())
	})
}
