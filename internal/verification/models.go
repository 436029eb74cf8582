package verification

import "github.com/shopspring/decimal"

// Domain identifies which utility a verification request concerns.
type Domain string

const (
	DomainElectricity Domain = "electricity"
	DomainLPG         Domain = "lpg"
	DomainMobile      Domain = "mobile"
)

// Outcome classifies the result of one verification request.
//
// OutcomeCannotVerify means the baseline was absent or unreachable; it is
// deliberately distinct from OutcomeMismatch so callers never conflate "no
// data" with "fraud".
type Outcome string

const (
	OutcomeMatch            Outcome = "match"
	OutcomeMismatch         Outcome = "mismatch"
	OutcomeIdentityMismatch Outcome = "identity_mismatch"
	OutcomeCannotVerify     Outcome = "cannot_verify"
)

// ElectricityRequest verifies a set of extracted bill statements for one
// account against the electricity baseline.
type ElectricityRequest struct {
	ApplicationID string
	SubjectID     string
	Records       []RawBillRecord
}

// LPGReport is the applicant's self-reported refill pattern.
type LPGReport struct {
	Refills         int64
	AvgRefillCost   decimal.Decimal
	AvgIntervalDays decimal.Decimal
}

// LPGRequest verifies a self-reported refill pattern against the LPG
// baseline for the given consumer number.
type LPGRequest struct {
	ApplicationID string
	SubjectID     string
	ConsumerNo    string
	Report        LPGReport
}

// MobileReport is the applicant's self-reported recharge pattern.
type MobileReport struct {
	AvgRechargeAmount decimal.Decimal
	RechargeFrequency decimal.Decimal
	Provider          string
}

// MobileRequest verifies a self-reported recharge pattern against the mobile
// baseline for the authenticated subject.
type MobileRequest struct {
	ApplicationID string
	SubjectID     string
	Report        MobileReport
}

// Result is the engine's answer to one verification request. Verdict is nil
// only when Outcome is OutcomeCannotVerify. Computed is populated for
// electricity so callers can echo the derived statistics. Warnings carry
// persistence failures that did not invalidate the verdict.
type Result struct {
	Domain   Domain
	Outcome  Outcome
	Verdict  *Verdict
	Computed *ComputedStatistics
	Warnings []string
}

func outcomeFor(v Verdict) Outcome {
	if v.Match {
		return OutcomeMatch
	}
	return OutcomeMismatch
}
