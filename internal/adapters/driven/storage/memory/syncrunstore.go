package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// Ensure SyncRunStore implements the interface.
var _ driven.SyncRunStore = (*SyncRunStore)(nil)

// SyncRunStore is an in-memory implementation of driven.SyncRunStore.
type SyncRunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.SyncRun
}

// NewSyncRunStore creates a new in-memory sync run store.
func NewSyncRunStore() *SyncRunStore {
	return &SyncRunStore{
		runs: make(map[string]domain.SyncRun),
	}
}

// SaveRun stores or updates a run.
func (s *SyncRunStore) SaveRun(_ context.Context, run *domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = copyRun(*run)
	return nil
}

// GetRun retrieves a run by ID.
func (s *SyncRunStore) GetRun(_ context.Context, id string) (*domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	run = copyRun(run)
	return &run, nil
}

// ListRuns returns up to limit runs, newest first. A limit of zero or
// less returns every run.
func (s *SyncRunStore) ListRuns(_ context.Context, limit int) ([]domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.SyncRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, copyRun(run))
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// copyRun detaches the run's slices and map from the caller's copy.
func copyRun(run domain.SyncRun) domain.SyncRun {
	run.Resources = append([]domain.Resource(nil), run.Resources...)
	run.CompanyIDs = append([]int64(nil), run.CompanyIDs...)
	if run.Counts != nil {
		counts := make(map[domain.Resource]int, len(run.Counts))
		for k, v := range run.Counts {
			counts[k] = v
		}
		run.Counts = counts
	}
	return run
}
