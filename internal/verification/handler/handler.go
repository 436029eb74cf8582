package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crossverify/internal/verification"
	"crossverify/pkg/domainerrors"
	"crossverify/pkg/platform/httputil"
	"crossverify/pkg/requestcontext"
)

// Service defines the interface for verification operations.
type Service interface {
	VerifyElectricity(ctx context.Context, req verification.ElectricityRequest) (*verification.Result, error)
	VerifyLPG(ctx context.Context, req verification.LPGRequest) (*verification.Result, error)
	VerifyMobile(ctx context.Context, req verification.MobileRequest) (*verification.Result, error)
}

// Handler wires the verify endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the verify endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify/electricity", h.HandleVerifyElectricity)
	r.Post("/verify/lpg", h.HandleVerifyLPG)
	r.Post("/verify/mobile", h.HandleVerifyMobile)
}

// HandleVerifyElectricity handles POST /verify/electricity.
func (h *Handler) HandleVerifyElectricity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	subjectID, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VerifyElectricityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.respond(w, ctx, requestID, func() (*verification.Result, error) {
		return h.service.VerifyElectricity(ctx, verification.ElectricityRequest{
			ApplicationID: req.ApplicationID,
			SubjectID:     subjectID,
			Records:       req.Records,
		})
	})
}

// HandleVerifyLPG handles POST /verify/lpg.
func (h *Handler) HandleVerifyLPG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	subjectID, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VerifyLPGRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.respond(w, ctx, requestID, func() (*verification.Result, error) {
		return h.service.VerifyLPG(ctx, verification.LPGRequest{
			ApplicationID: req.ApplicationID,
			SubjectID:     subjectID,
			ConsumerNo:    req.ConsumerNo,
			Report: verification.LPGReport{
				Refills:         req.Refills,
				AvgRefillCost:   req.AvgRefillCost,
				AvgIntervalDays: req.AvgRefillIntervalDay,
			},
		})
	})
}

// HandleVerifyMobile handles POST /verify/mobile.
func (h *Handler) HandleVerifyMobile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	subjectID, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VerifyMobileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.respond(w, ctx, requestID, func() (*verification.Result, error) {
		return h.service.VerifyMobile(ctx, verification.MobileRequest{
			ApplicationID: req.ApplicationID,
			SubjectID:     subjectID,
			Report: verification.MobileReport{
				AvgRechargeAmount: req.AvgRechargeAmount,
				RechargeFrequency: req.RechargeFrequency,
				Provider:          req.Provider,
			},
		})
	})
}

func (h *Handler) requireSubject(w http.ResponseWriter, ctx context.Context) (string, bool) {
	subjectID := requestcontext.SubjectID(ctx)
	if subjectID == "" {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return subjectID, true
}

func (h *Handler) respond(w http.ResponseWriter, ctx context.Context, requestID string, verify func() (*verification.Result, error)) {
	start := time.Now()
	result, err := verify()
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification completed",
		"request_id", requestID,
		"domain", result.Domain,
		"outcome", result.Outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
