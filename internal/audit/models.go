// Package audit captures the append-only trail of verification and auth
// activity. Events flow through a Publisher into a Store; the Kafka store is
// the production sink, the in-memory store serves dev and tests.
package audit

import "time"

// Action names what happened. Keep the vocabulary small and stable; consumers
// key off these strings.
const (
	ActionVerdict          = "verification.verdict"
	ActionIdentityMismatch = "verification.identity_mismatch"
	ActionCannotVerify     = "verification.cannot_verify"
	ActionCodeRequested    = "auth.code_requested"
	ActionCodeConfirmed    = "auth.code_confirmed"
)

// Event is one audit record. Subject is the claimant's identity key;
// AccountKey the utility account the event concerns (empty for auth events).
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	Action     string    `json:"action"`
	Subject    string    `json:"subject"`
	Domain     string    `json:"domain,omitempty"`
	AccountKey string    `json:"account_key,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	Flag       int       `json:"flag"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	DeviceName string    `json:"device_name,omitempty"`
}
