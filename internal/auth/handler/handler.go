package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crossverify/pkg/domainerrors"
	"crossverify/pkg/platform/httputil"
	"crossverify/pkg/requestcontext"
)

// Service defines the interface for the one-time-code login flow.
type Service interface {
	RequestCode(ctx context.Context, subjectID string) error
	ConfirmCode(ctx context.Context, subjectID, code string) (string, error)
}

// Handler wires the auth endpoints to the auth service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the auth endpoints on the router. These are public; the
// token they produce gates the verify endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/code", h.HandleRequestCode)
	r.Post("/auth/token", h.HandleConfirmCode)
}

// RequestCodeRequest is the HTTP body for POST /auth/code.
type RequestCodeRequest struct {
	SubjectID string `json:"subject_id"`
}

func (r *RequestCodeRequest) Validate() error {
	r.SubjectID = strings.TrimSpace(r.SubjectID)
	if r.SubjectID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "subject_id is required")
	}
	return nil
}

// ConfirmCodeRequest is the HTTP body for POST /auth/token.
type ConfirmCodeRequest struct {
	SubjectID string `json:"subject_id"`
	Code      string `json:"code"`
}

func (r *ConfirmCodeRequest) Validate() error {
	r.SubjectID = strings.TrimSpace(r.SubjectID)
	r.Code = strings.TrimSpace(r.Code)
	if r.SubjectID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "subject_id is required")
	}
	if r.Code == "" {
		return domainerrors.New(domainerrors.CodeValidation, "code is required")
	}
	return nil
}

// TokenResponse is the HTTP response for POST /auth/token.
type TokenResponse struct {
	Token string `json:"token"`
}

// HandleRequestCode handles POST /auth/code.
func (h *Handler) HandleRequestCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RequestCodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.RequestCode(ctx, req.SubjectID); err != nil {
		h.logger.ErrorContext(ctx, "code request failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "code_sent"})
}

// HandleConfirmCode handles POST /auth/token.
func (h *Handler) HandleConfirmCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ConfirmCodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.service.ConfirmCode(ctx, req.SubjectID, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "code confirmation failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
