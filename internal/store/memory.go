package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/models"
)

// InMemoryStore implements ResultStore for testing and for servers running
// without a database.
type InMemoryStore struct {
	mu      sync.RWMutex
	runs    []Run
	records map[int64][]models.Metrics
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[int64][]models.Metrics)}
}

// SaveRun stores a copy of records.
func (s *InMemoryStore) SaveRun(ctx context.Context, cfg config.ExperimentConfig, records []models.Metrics) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(len(s.runs) + 1)
	s.runs = append(s.runs, Run{
		ID:        id,
		Config:    cfg,
		Records:   len(records),
		CreatedAt: time.Now().UTC(),
	})
	s.records[id] = slices.Clone(records)
	return id, nil
}

// ListRuns returns every run, oldest first.
func (s *InMemoryStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.runs), nil
}

// LoadMetrics returns a copy of the run's records.
func (s *InMemoryStore) LoadMetrics(ctx context.Context, runID int64) ([]models.Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.records[runID]
	if !ok {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	return slices.Clone(records), nil
}

// Close is a no-op.
func (s *InMemoryStore) Close() error {
	return nil
}
