package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/LumpsRGood/tablet-use-app/pkg/metrics"
)

// Metrics records per-route request counts and latencies. Routes are labeled
// by chi route pattern, not raw path, to keep label cardinality bounded.
func Metrics(manager *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, req)

			route := chi.RouteContext(req.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			manager.RecordHTTPRequest(route, req.Method, strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
