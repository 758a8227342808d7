package memory

import (
	"context"
	"sync"

	"review_dashboard/internal/adapters/observability"
)

// ApprovalStore keeps decisions for the lifetime of the process only.
type ApprovalStore struct {
	mu sync.RWMutex
	m  map[int64]bool
}

func New() *ApprovalStore { return &ApprovalStore{m: make(map[int64]bool)} }

func (s *ApprovalStore) Get(_ context.Context, id int64) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[id]
	if ok {
		observability.ObserveApproval("memory", "hit")
	} else {
		observability.ObserveApproval("memory", "miss")
	}
	return v, ok, nil
}

func (s *ApprovalStore) GetMany(_ context.Context, ids []int64) (map[int64]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if v, ok := s.m[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (s *ApprovalStore) Set(_ context.Context, id int64, approved bool) error {
	s.mu.Lock()
	s.m[id] = approved
	s.mu.Unlock()
	observability.ObserveApproval("memory", "set")
	return nil
}

func (s *ApprovalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	observability.ObserveApproval("memory", "del")
	return nil
}
