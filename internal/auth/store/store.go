// Package store holds the expiring one-time-code stores. Codes live behind
// an explicit interface with a TTL instead of a process-global map, so
// multiple instances can share state via Redis and tests can use memory.
package store

import (
	"context"
	"time"
)

// CodeStore keeps one pending code hash per subject. Save overwrites any
// previous pending code. Take removes and returns the hash in one step so a
// code can never be confirmed twice; it returns sentinel.ErrNotFound when no
// code is pending and sentinel.ErrExpired when the store can tell the code
// aged out rather than never existing.
type CodeStore interface {
	Save(ctx context.Context, subjectID, codeHash string, ttl time.Duration) error
	Take(ctx context.Context, subjectID string) (string, error)
}
