package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"crossverify/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request ID to the context and response headers. An
// inbound X-Request-Id is honored so callers can correlate across services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
