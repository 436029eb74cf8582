package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"crossverify/pkg/domainerrors"
	"crossverify/pkg/platform/httputil"
	"crossverify/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the subject identity
// key it was issued for.
type TokenValidator interface {
	ValidateToken(tokenString string) (subjectID string, err error)
}

// RequireAuth rejects requests without a valid bearer token and injects the
// authenticated subject into the context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			subjectID, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithSubjectID(ctx, subjectID)))
		})
	}
}
