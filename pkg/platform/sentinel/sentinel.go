package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// return these (optionally wrapped) so services can translate them into domain
// errors without inspecting driver-specific failures.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store (e.g. no baseline row)
// - ErrExpired: one-time code or token past its TTL
// - ErrAlreadyUsed: one-time code already consumed
// - ErrInvalidState: entity in wrong state for the requested operation
// - ErrUnavailable: backing service temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domainerrors.
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
