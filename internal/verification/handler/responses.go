package handler

import "crossverify/internal/verification"

// VerifyResponse is the HTTP response for all three verify endpoints. Match
// and Flag are omitted for the cannot_verify outcome, where no verdict
// exists.
type VerifyResponse struct {
	Outcome       string                            `json:"outcome"`
	Match         *bool                             `json:"match,omitempty"`
	Flag          *int                              `json:"flag,omitempty"`
	Differences   map[string]verification.FieldDiff `json:"differences,omitempty"`
	ComputedStats *verification.ComputedStatistics  `json:"computed_stats,omitempty"`
	Warnings      []string                          `json:"warnings,omitempty"`
}

// FromResult converts an engine result to an HTTP response.
func FromResult(result *verification.Result) *VerifyResponse {
	resp := &VerifyResponse{
		Outcome:       string(result.Outcome),
		ComputedStats: result.Computed,
		Warnings:      result.Warnings,
	}
	if result.Verdict != nil {
		match := result.Verdict.Match
		flag := int(result.Verdict.Flag)
		resp.Match = &match
		resp.Flag = &flag
		resp.Differences = result.Verdict.Differences
	}
	return resp
}
