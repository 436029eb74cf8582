package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crossverify/pkg/platform/sentinel"
)

type memoryEntry struct {
	codeHash  string
	expiresAt time.Time
}

// MemoryCodeStore is the single-process CodeStore. Expired entries are
// reaped lazily on Take; there is no background sweeper because the working
// set is one entry per subject with a short TTL.
type MemoryCodeStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

// MemoryCodeStoreOption configures a MemoryCodeStore.
type MemoryCodeStoreOption func(*MemoryCodeStore)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) MemoryCodeStoreOption {
	return func(s *MemoryCodeStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewMemoryCodeStore(opts ...MemoryCodeStoreOption) *MemoryCodeStore {
	s := &MemoryCodeStore{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryCodeStore) Save(_ context.Context, subjectID, codeHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[subjectID] = memoryEntry{
		codeHash:  codeHash,
		expiresAt: s.clock().Add(ttl),
	}
	return nil
}

func (s *MemoryCodeStore) Take(_ context.Context, subjectID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[subjectID]
	if !ok {
		return "", fmt.Errorf("pending code for %s: %w", subjectID, sentinel.ErrNotFound)
	}
	delete(s.entries, subjectID)
	if s.clock().After(entry.expiresAt) {
		return "", fmt.Errorf("pending code for %s: %w", subjectID, sentinel.ErrExpired)
	}
	return entry.codeHash, nil
}
