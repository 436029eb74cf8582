// Package verification implements the utility-consumption cross-verification
// engine: it takes records an applicant self-reports (or that a document-
// understanding service extracted from a scanned bill), compares them against
// an independently obtained baseline for the same account, and emits a
// match/no-match verdict that downstream systems persist as a trust signal.
package verification

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawBillRecord is one billing-cycle statement exactly as produced by the
// document-understanding service or typed in by the user. Everything is a
// string; the adapter owns all parsing.
type RawBillRecord struct {
	AccountNo         string `json:"account_no"`
	BillAmount        string `json:"bill_amount"`
	BillDate          string `json:"bill_date"`
	DueDate           string `json:"due_date"`
	DelayDays         string `json:"delay_days"`
	OutstandingAmount string `json:"outstanding_amount"`
}

// ExtractedBillRecord is the typed form of one statement. Created transiently
// per verification request; never persisted by this engine.
type ExtractedBillRecord struct {
	AccountNo   string
	Amount      decimal.Decimal
	IssueDate   time.Time
	DueDate     time.Time
	DelayDays   int64
	Outstanding decimal.Decimal
}

// numericJunk strips currency symbols and grouping punctuation so values like
// "₹12,345.00" parse.
var numericJunk = regexp.MustCompile(`[^0-9.\-]+`)

// dateLayouts covers the formats the extraction service has been seen to emit.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// AdaptBill normalizes a raw record into typed fields. Malformed numeric and
// date values coerce to zero values rather than aborting the batch; the
// second return is the number of coercions so callers can log them. When
// DelayDays is absent it is derived as max(issue − due, 0) in whole days.
func AdaptBill(raw RawBillRecord) (ExtractedBillRecord, int) {
	coerced := 0

	amount, ok := ParseAmount(raw.BillAmount)
	if !ok {
		coerced++
	}
	outstanding := decimal.Zero
	if strings.TrimSpace(raw.OutstandingAmount) != "" {
		outstanding, ok = ParseAmount(raw.OutstandingAmount)
		if !ok {
			coerced++
		}
	}

	issueDate, issueOK := parseDate(raw.BillDate)
	if !issueOK && strings.TrimSpace(raw.BillDate) != "" {
		coerced++
	}
	dueDate, dueOK := parseDate(raw.DueDate)
	if !dueOK && strings.TrimSpace(raw.DueDate) != "" {
		coerced++
	}

	var delay int64
	if strings.TrimSpace(raw.DelayDays) != "" {
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw.DelayDays), 10, 64)
		if err != nil {
			coerced++
		} else {
			delay = parsed
		}
	} else if issueOK && dueOK {
		delay = int64(issueDate.Sub(dueDate).Hours() / 24)
	}
	if delay < 0 {
		delay = 0
	}

	return ExtractedBillRecord{
		AccountNo:   strings.TrimSpace(raw.AccountNo),
		Amount:      amount,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		DelayDays:   delay,
		Outstanding: outstanding,
	}, coerced
}

// ParseAmount leniently parses a currency amount, stripping symbols and
// grouping punctuation first. Unparseable input yields (0, false); callers
// continue with the zero value.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := numericJunk.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
