// Package requestmeta tags every request with an ID and a request-scoped
// timestamp so all operations within one request share a consistent "now"
// and a correlatable identifier in logs.
package requestmeta

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"geomed/pkg/requestcontext"
)

// Middleware assigns a request ID (honoring an inbound X-Request-ID) and
// captures the request start time into the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
