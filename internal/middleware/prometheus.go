package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/iamthegreatdestroyer/hyperbox/internal/metrics"
)

// PrometheusMiddleware records HTTP request metrics for Prometheus
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		// Process the request
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		path := sanitizePath(r.URL.Path)
		statusCode := ww.Status()

		metrics.RecordHTTPRequest(r.Method, path, statusCode, duration)
	})
}

// RequestIDResponseMiddleware adds the request ID to response headers
func RequestIDResponseMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// sanitizePath normalizes URL paths for metrics to prevent cardinality explosion
func sanitizePath(path string) string {
	path = strings.TrimSuffix(path, "/")

	// Per-container series endpoints embed the container ID
	if strings.HasPrefix(path, "/api/v1/series/containers/") {
		return "/api/v1/series/containers/:id"
	}

	return path
}
