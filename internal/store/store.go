// Package store defines the ResultStore interface for persisting experiment
// runs and their per-episode metrics.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/models"
)

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Run describes one stored experiment.
type Run struct {
	ID        int64                   `json:"id"`
	Config    config.ExperimentConfig `json:"config"`
	Records   int                     `json:"records"`
	CreatedAt time.Time               `json:"created_at"`
}

// ResultStore persists experiment runs.
type ResultStore interface {
	// SaveRun stores cfg and its records as one run and returns the run ID.
	SaveRun(ctx context.Context, cfg config.ExperimentConfig, records []models.Metrics) (int64, error)

	// ListRuns returns every run, oldest first.
	ListRuns(ctx context.Context) ([]Run, error)

	// LoadMetrics returns a run's records in episode-major, strategy-minor order.
	LoadMetrics(ctx context.Context, runID int64) ([]models.Metrics, error)

	// Close releases any resources held by the store.
	Close() error
}
