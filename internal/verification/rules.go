package verification

import (
	"strings"

	"github.com/shopspring/decimal"

	"crossverify/internal/verification/ports"
)

// Flag is the binary escalation outcome attached to a verification.
// FlagReview means "send for manual review".
type Flag int

const (
	FlagClear  Flag = 0
	FlagReview Flag = 1
)

// FieldDiff records both sides of a mismatching field.
type FieldDiff struct {
	Computed decimal.Decimal `json:"computed"`
	Stored   decimal.Decimal `json:"stored"`
}

// Verdict is the outcome of one comparison. Differences is populated only by
// the electricity comparator and keyed by mismatching field names only.
type Verdict struct {
	Match       bool                 `json:"match"`
	Flag        Flag                 `json:"flag"`
	Differences map[string]FieldDiff `json:"differences,omitempty"`
}

// LPGTolerances are the fixed absolute tolerance bands for refill-pattern
// matching. Self-reports here are user-recalled and inherently approximate,
// so exact match is inappropriate; absolute (not relative) tolerances keep
// the rule auditable. All bounds are inclusive.
type LPGTolerances struct {
	MaxRefillDiff   int64
	MaxCostDiff     decimal.Decimal
	MaxIntervalDiff decimal.Decimal
}

// DefaultLPGTolerances returns the standard bands: one refill, 150 currency
// units, ten days.
func DefaultLPGTolerances() LPGTolerances {
	return LPGTolerances{
		MaxRefillDiff:   1,
		MaxCostDiff:     decimal.NewFromInt(150),
		MaxIntervalDiff: decimal.NewFromInt(10),
	}
}

// CompareElectricity compares computed statistics against the baseline field
// by field with exact equality — both sides derive from the same
// deterministic formulas over canonical source documents, so any divergence
// signals tampering or extraction error. The mismatch threshold tolerates
// extraction noise on a minority of fields: flag = review iff mismatches
// exceed it. Running the comparator twice on identical inputs yields
// identical verdicts.
func CompareElectricity(computed ComputedStatistics, baseline ports.ElectricityBaseline, mismatchThreshold int) Verdict {
	diffs := make(map[string]FieldDiff)

	compareInt(diffs, "total_bills", computed.TotalBills, baseline.TotalBills)
	compareDecimal(diffs, "total_amount", computed.TotalAmount, baseline.TotalAmount)
	compareDecimal(diffs, "avg_amount", computed.AverageAmount, baseline.AverageAmount)
	compareInt(diffs, "on_time_bills", computed.OnTimeBills, baseline.OnTimeBills)
	compareInt(diffs, "late_bills", computed.LateBills, baseline.LateBills)
	compareInt(diffs, "total_delay_days", computed.TotalDelayDays, baseline.TotalDelayDays)
	compareInt(diffs, "max_delay_days", computed.MaxDelayDays, baseline.MaxDelayDays)
	compareDecimal(diffs, "outstanding_amount", computed.CurrentOutstanding, baseline.CurrentOutstanding)
	compareDecimal(diffs, "sudden_drop_index", computed.SuddenDropIndex, baseline.SuddenDropIndex)

	verdict := Verdict{
		Match: len(diffs) == 0,
		Flag:  FlagClear,
	}
	if len(diffs) > mismatchThreshold {
		verdict.Flag = FlagReview
	}
	if len(diffs) > 0 {
		verdict.Differences = diffs
	}
	return verdict
}

// CompareLPG checks the self-reported refill pattern against the baseline
// within the given tolerance bands.
func CompareLPG(reported LPGReport, baseline ports.LPGBaseline, tol LPGTolerances) Verdict {
	refillDiff := reported.Refills - baseline.Refills
	if refillDiff < 0 {
		refillDiff = -refillDiff
	}
	costDiff := reported.AvgRefillCost.Sub(baseline.AvgRefillCost).Abs()
	intervalDiff := reported.AvgIntervalDays.Sub(baseline.AvgRefillIntervalDays).Abs()

	match := refillDiff <= tol.MaxRefillDiff &&
		costDiff.LessThanOrEqual(tol.MaxCostDiff) &&
		intervalDiff.LessThanOrEqual(tol.MaxIntervalDiff)

	return Verdict{Match: match, Flag: flagFor(match)}
}

// CompareMobile checks the self-reported recharge pattern with exact numeric
// equality after decimal normalization; the provider name is compared
// case-insensitively.
func CompareMobile(reported MobileReport, baseline ports.MobileBaseline) Verdict {
	match := reported.AvgRechargeAmount.Equal(baseline.AvgRechargeAmount) &&
		reported.RechargeFrequency.Equal(baseline.RechargeFrequency) &&
		strings.EqualFold(strings.TrimSpace(reported.Provider), strings.TrimSpace(baseline.Provider))

	return Verdict{Match: match, Flag: flagFor(match)}
}

func flagFor(match bool) Flag {
	if match {
		return FlagClear
	}
	return FlagReview
}

func compareInt(diffs map[string]FieldDiff, field string, computed, stored int64) {
	if computed != stored {
		diffs[field] = FieldDiff{
			Computed: decimal.NewFromInt(computed),
			Stored:   decimal.NewFromInt(stored),
		}
	}
}

func compareDecimal(diffs map[string]FieldDiff, field string, computed, stored decimal.Decimal) {
	if !computed.Equal(stored) {
		diffs[field] = FieldDiff{Computed: computed, Stored: stored}
	}
}
