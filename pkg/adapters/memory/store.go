package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/envcheck/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Report),
	}
}

// Save keeps a copy of the report.
func (s *Store) Save(ctx context.Context, workspace string, report *domain.Report) error {
	copied := clone(report)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[workspace] = copied
	return nil
}

// Load returns a copy of the stored report so callers can't mutate it.
func (s *Store) Load(ctx context.Context, workspace string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[workspace]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return clone(report), nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, workspace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, workspace)
	return nil
}

// List returns the workspaces with a stored report.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workspaces := make([]string, 0, len(s.data))
	for ws := range s.data {
		workspaces = append(workspaces, ws)
	}
	slices.Sort(workspaces)
	return workspaces, nil
}

func clone(r *domain.Report) *domain.Report {
	c := *r
	c.EnvFiles = slices.Clone(r.EnvFiles)
	c.Missing = slices.Clone(r.Missing)
	c.Unused = slices.Clone(r.Unused)
	c.Diagnostics = slices.Clone(r.Diagnostics)
	c.Sealed = slices.Clone(r.Sealed)
	return &c
}
