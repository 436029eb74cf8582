// Package store provides the concrete BaselineProvider and VerdictSink
// adapters: PostgreSQL for production, in-memory for dev and tests.
package store

import (
	"context"
	"fmt"
	"sync"

	"crossverify/internal/verification/ports"
	"crossverify/pkg/platform/sentinel"
)

// MemoryStore keeps baselines and verdict writes in maps. It intentionally
// favors clarity over performance and implements both ports so a dev process
// can run without PostgreSQL.
type MemoryStore struct {
	mu          sync.RWMutex
	electricity map[string]ports.ElectricityBaseline
	lpg         map[string]ports.LPGBaseline
	mobile      map[string]ports.MobileBaseline
	derived     map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		electricity: make(map[string]ports.ElectricityBaseline),
		lpg:         make(map[string]ports.LPGBaseline),
		mobile:      make(map[string]ports.MobileBaseline),
		derived:     make(map[string]map[string]any),
	}
}

// SeedElectricity stores an electricity baseline keyed by account number.
func (s *MemoryStore) SeedElectricity(b ports.ElectricityBaseline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.electricity[b.AccountNo] = b
}

// SeedLPG stores an LPG baseline keyed by consumer number.
func (s *MemoryStore) SeedLPG(b ports.LPGBaseline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lpg[b.ConsumerNo] = b
}

// SeedMobile stores a mobile baseline keyed by owner identity.
func (s *MemoryStore) SeedMobile(b ports.MobileBaseline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mobile[b.OwnerID] = b
}

func (s *MemoryStore) FetchElectricity(_ context.Context, accountNo string) (*ports.ElectricityBaseline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.electricity[accountNo]; ok {
		return &b, nil
	}
	return nil, fmt.Errorf("electricity baseline %s: %w", accountNo, sentinel.ErrNotFound)
}

func (s *MemoryStore) FetchLPG(_ context.Context, consumerNo string) (*ports.LPGBaseline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.lpg[consumerNo]; ok {
		return &b, nil
	}
	return nil, fmt.Errorf("lpg baseline %s: %w", consumerNo, sentinel.ErrNotFound)
}

func (s *MemoryStore) FetchMobile(_ context.Context, subjectID string) (*ports.MobileBaseline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.mobile[subjectID]; ok {
		return &b, nil
	}
	return nil, fmt.Errorf("mobile baseline %s: %w", subjectID, sentinel.ErrNotFound)
}

func (s *MemoryStore) PersistFlag(_ context.Context, domain, accountKey string, flag int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch domain {
	case "electricity":
		b, ok := s.electricity[accountKey]
		if !ok {
			return fmt.Errorf("electricity baseline %s: %w", accountKey, sentinel.ErrNotFound)
		}
		b.Flag = flag
		s.electricity[accountKey] = b
	case "lpg":
		b, ok := s.lpg[accountKey]
		if !ok {
			return fmt.Errorf("lpg baseline %s: %w", accountKey, sentinel.ErrNotFound)
		}
		b.Flag = flag
		s.lpg[accountKey] = b
	case "mobile":
		b, ok := s.mobile[accountKey]
		if !ok {
			return fmt.Errorf("mobile baseline %s: %w", accountKey, sentinel.ErrNotFound)
		}
		b.Flag = flag
		s.mobile[accountKey] = b
	default:
		return fmt.Errorf("unknown domain %q: %w", domain, sentinel.ErrInvalidState)
	}
	return nil
}

func (s *MemoryStore) PersistDerivedFields(_ context.Context, applicationID, subjectID string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := applicationID + "/" + subjectID
	row, ok := s.derived[key]
	if !ok {
		row = make(map[string]any)
		s.derived[key] = row
	}
	for k, v := range fields {
		row[k] = v
	}
	return nil
}

// Flag returns the stored flag for a baseline row, for test assertions.
func (s *MemoryStore) Flag(domain, accountKey string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch domain {
	case "electricity":
		if b, ok := s.electricity[accountKey]; ok {
			return b.Flag, true
		}
	case "lpg":
		if b, ok := s.lpg[accountKey]; ok {
			return b.Flag, true
		}
	case "mobile":
		if b, ok := s.mobile[accountKey]; ok {
			return b.Flag, true
		}
	}
	return 0, false
}

// DerivedFields returns the mirrored profile row, for test assertions.
func (s *MemoryStore) DerivedFields(applicationID, subjectID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.derived[applicationID+"/"+subjectID]
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
