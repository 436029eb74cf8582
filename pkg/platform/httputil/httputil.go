// Package httputil centralizes JSON encoding, request decoding, and error
// rendering for HTTP handlers so individual handlers stay thin.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"crossverify/pkg/domainerrors"
	"crossverify/pkg/platform/sentinel"
)

// Validatable is implemented by request bodies that validate and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON encodes v as JSON with the given status. Encoding failures are
// ignored; by the time they can occur the header has already been written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError renders err as a JSON error response. Domain errors map to their
// HTTP status; sentinel errors get a conservative default; anything else is an
// internal error whose description is withheld from the client.
func WriteError(w http.ResponseWriter, err error) {
	var de *domainerrors.Error
	if errors.As(err, &de) {
		WriteJSON(w, statusFor(de.Code), errorBody{
			Error:       string(de.Code),
			Description: descriptionFor(de),
		})
		return
	}

	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: string(domainerrors.CodeNotFound)})
	case errors.Is(err, sentinel.ErrExpired), errors.Is(err, sentinel.ErrAlreadyUsed):
		WriteJSON(w, http.StatusUnauthorized, errorBody{Error: string(domainerrors.CodeUnauthorized)})
	case errors.Is(err, sentinel.ErrUnavailable):
		WriteJSON(w, http.StatusServiceUnavailable, errorBody{Error: string(domainerrors.CodeUnavailable)})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: string(domainerrors.CodeInternal)})
	}
}

func statusFor(code domainerrors.Code) int {
	switch code {
	case domainerrors.CodeBadRequest, domainerrors.CodeValidation:
		return http.StatusBadRequest
	case domainerrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case domainerrors.CodeNotFound:
		return http.StatusNotFound
	case domainerrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// descriptionFor withholds details for internal errors; everything else is a
// client-facing message by construction.
func descriptionFor(de *domainerrors.Error) string {
	if de.Code == domainerrors.CodeInternal {
		return ""
	}
	return de.Message
}

// DecodeAndPrepare decodes the request body into T, runs its validation, and
// writes the error response itself on failure. Handlers check the second
// return and bail out without further ceremony.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "malformed request body", "request_id", requestID, "error", err)
		}
		WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed JSON body"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
