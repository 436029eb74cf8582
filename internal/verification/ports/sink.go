package ports

import "context"

// VerdictSink persists verification outcomes. PersistFlag writes the flag
// back onto the baseline record's own row; PersistDerivedFields mirrors a
// denormalized subset of values onto the applicant's derived-profile row.
//
// The engine treats sink failures as secondary: a verdict already computed is
// returned to the caller regardless, with the failure logged and surfaced as
// a warning.
type VerdictSink interface {
	// PersistFlag overwrites the flag on the baseline row identified by
	// domain + accountKey. Flag 1 means "escalate for manual review".
	PersistFlag(ctx context.Context, domain string, accountKey string, flag int) error

	// PersistDerivedFields mirrors field values onto the derived-profile row
	// keyed by application and subject identifiers.
	PersistDerivedFields(ctx context.Context, applicationID, subjectID string, fields map[string]any) error
}
