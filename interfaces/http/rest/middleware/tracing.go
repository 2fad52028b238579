package middleware

import (
	"net/http"

	"advicehub-backend/pkg/observability"
)

// Tracing opens a root trace segment per request. A subsegment would need
// an upstream parent, which a standalone server does not have.
func Tracing(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tracer.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			next.ServeHTTP(w, r.WithContext(ctx))
			seg.Close(nil)
		})
	}
}
