package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"crossverify/internal/verification"
	"crossverify/pkg/domainerrors"
)

const maxRecordsPerRequest = 24

// VerifyElectricityRequest is the HTTP body for POST /verify/electricity.
// Records arrive as the document-understanding service emitted them: all
// string fields, lenient parsing downstream.
type VerifyElectricityRequest struct {
	ApplicationID string                       `json:"application_id"`
	Records       []verification.RawBillRecord `json:"records"`
}

func (r *VerifyElectricityRequest) Validate() error {
	if r == nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "request body is required")
	}
	r.ApplicationID = strings.TrimSpace(r.ApplicationID)
	if r.ApplicationID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "application_id is required")
	}
	if len(r.Records) == 0 {
		return domainerrors.New(domainerrors.CodeValidation, "at least one bill record is required")
	}
	if len(r.Records) > maxRecordsPerRequest {
		return domainerrors.New(domainerrors.CodeValidation, "too many bill records in one request")
	}
	return nil
}

// VerifyLPGRequest is the HTTP body for POST /verify/lpg.
type VerifyLPGRequest struct {
	ApplicationID        string          `json:"application_id"`
	ConsumerNo           string          `json:"consumer_no"`
	Refills              int64           `json:"refills_3m"`
	AvgRefillCost        decimal.Decimal `json:"avg_refill_cost"`
	AvgRefillIntervalDay decimal.Decimal `json:"avg_refill_interval_days"`
}

func (r *VerifyLPGRequest) Validate() error {
	if r == nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "request body is required")
	}
	r.ApplicationID = strings.TrimSpace(r.ApplicationID)
	r.ConsumerNo = strings.TrimSpace(r.ConsumerNo)
	if r.ApplicationID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "application_id is required")
	}
	if r.ConsumerNo == "" {
		return domainerrors.New(domainerrors.CodeValidation, "consumer_no is required")
	}
	if r.Refills < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "refills_3m must not be negative")
	}
	return nil
}

// VerifyMobileRequest is the HTTP body for POST /verify/mobile.
type VerifyMobileRequest struct {
	ApplicationID     string          `json:"application_id"`
	AvgRechargeAmount decimal.Decimal `json:"avg_recharge_amount"`
	RechargeFrequency decimal.Decimal `json:"recharge_frequency"`
	Provider          string          `json:"provider"`
}

func (r *VerifyMobileRequest) Validate() error {
	if r == nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "request body is required")
	}
	r.ApplicationID = strings.TrimSpace(r.ApplicationID)
	r.Provider = strings.TrimSpace(r.Provider)
	if r.ApplicationID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "application_id is required")
	}
	if r.Provider == "" {
		return domainerrors.New(domainerrors.CodeValidation, "provider is required")
	}
	return nil
}
