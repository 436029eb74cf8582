package verification

import "github.com/shopspring/decimal"

// ComputedStatistics aggregates an ordered sequence of bill records for one
// account. Field-for-field it mirrors ports.ElectricityBaseline so the
// comparator can line the two up.
type ComputedStatistics struct {
	TotalBills         int64           `json:"total_bills"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	AverageAmount      decimal.Decimal `json:"avg_amount"`
	OnTimeBills        int64           `json:"on_time_bills"`
	LateBills          int64           `json:"late_bills"`
	TotalDelayDays     int64           `json:"total_delay_days"`
	MaxDelayDays       int64           `json:"max_delay_days"`
	CurrentOutstanding decimal.Decimal `json:"outstanding_amount"`
	SuddenDropIndex    decimal.Decimal `json:"sudden_drop_index"`
}

// Aggregate derives summary statistics from the records of one account. Input
// order is chronological as received and is never re-sorted; the current
// outstanding amount comes from the last record in input order. Empty input
// returns ok=false and the zero value — callers must not compare against it.
//
// The sudden-drop index is (amount[2] − amount[1]) / amount[1] when at least
// three records are present and amount[1] is nonzero, else zero. It is a
// cheap anomaly signal, not a statistic of the whole series.
func Aggregate(records []ExtractedBillRecord) (ComputedStatistics, bool) {
	if len(records) == 0 {
		return ComputedStatistics{}, false
	}

	stats := ComputedStatistics{
		TotalBills:         int64(len(records)),
		TotalAmount:        decimal.Zero,
		CurrentOutstanding: records[len(records)-1].Outstanding,
		SuddenDropIndex:    decimal.Zero,
	}

	for _, rec := range records {
		stats.TotalAmount = stats.TotalAmount.Add(rec.Amount)
		if rec.DelayDays <= 0 {
			stats.OnTimeBills++
		}
		stats.TotalDelayDays += rec.DelayDays
		if rec.DelayDays > stats.MaxDelayDays {
			stats.MaxDelayDays = rec.DelayDays
		}
	}
	stats.LateBills = stats.TotalBills - stats.OnTimeBills
	stats.AverageAmount = stats.TotalAmount.Div(decimal.NewFromInt(stats.TotalBills)).Round(0)

	if len(records) >= 3 && !records[1].Amount.IsZero() {
		stats.SuddenDropIndex = records[2].Amount.Sub(records[1].Amount).Div(records[1].Amount)
	}

	return stats, true
}
