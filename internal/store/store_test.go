package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/experiment"
	"github.com/JieUpup/MRGC/internal/models"
)

func runRecords(t *testing.T, cfg config.ExperimentConfig) []models.Metrics {
	t.Helper()
	records, err := experiment.Run(context.Background(), cfg, experiment.Options{})
	if err != nil {
		t.Fatalf("experiment.Run() error = %v", err)
	}
	return records
}

// storeFactories returns one constructor per ResultStore implementation.
func storeFactories() map[string]func(t *testing.T) ResultStore {
	return map[string]func(t *testing.T) ResultStore{
		"memory": func(t *testing.T) ResultStore { return NewInMemoryStore() },
		"sqlite": func(t *testing.T) ResultStore {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
			if err != nil {
				t.Fatalf("NewSQLiteStore() error = %v", err)
			}
			return s
		},
	}
}

func TestResultStore_SaveLoad(t *testing.T) {
	cfg := config.ExperimentConfig{Agents: 6, Slots: 3, Episodes: 3, MaxEdges: 2, Seed: 42}
	records := runRecords(t, cfg)

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			ctx := context.Background()

			id, err := s.SaveRun(ctx, cfg, records)
			if err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}

			got, err := s.LoadMetrics(ctx, id)
			if err != nil {
				t.Fatalf("LoadMetrics() error = %v", err)
			}
			if len(got) != len(records) {
				t.Fatalf("LoadMetrics() returned %d records, want %d", len(got), len(records))
			}
			for i := range records {
				if got[i] != records[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
				}
			}
		})
	}
}

func TestResultStore_ListRuns(t *testing.T) {
	first := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 1, MaxEdges: 2, Seed: 0}
	second := config.ExperimentConfig{Agents: 8, Slots: 4, Episodes: 2, MaxEdges: 3, Seed: 7}

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			ctx := context.Background()

			id1, err := s.SaveRun(ctx, first, runRecords(t, first))
			if err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}
			id2, err := s.SaveRun(ctx, second, runRecords(t, second))
			if err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}
			if id1 == id2 {
				t.Fatalf("SaveRun() returned duplicate id %d", id1)
			}

			runs, err := s.ListRuns(ctx)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != 2 {
				t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
			}
			if runs[0].ID != id1 || runs[0].Config != first || runs[0].Records != 4 {
				t.Errorf("runs[0] = %+v, want id %d config %v with 4 records", runs[0], id1, first)
			}
			if runs[1].ID != id2 || runs[1].Config != second || runs[1].Records != 8 {
				t.Errorf("runs[1] = %+v, want id %d config %v with 8 records", runs[1], id2, second)
			}
			if runs[0].CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be set")
			}
		})
	}
}

func TestResultStore_RunNotFound(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			_, err := s.LoadMetrics(context.Background(), 99)
			if !errors.Is(err, ErrRunNotFound) {
				t.Errorf("LoadMetrics() error = %v, want ErrRunNotFound", err)
			}
		})
	}
}

func TestResultStore_EmptyRun(t *testing.T) {
	cfg := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 1, MaxEdges: 2}

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			ctx := context.Background()

			id, err := s.SaveRun(ctx, cfg, nil)
			if err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}
			got, err := s.LoadMetrics(ctx, id)
			if err != nil {
				t.Fatalf("LoadMetrics() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected no records, got %d", len(got))
			}
		})
	}
}

func TestInMemoryStore_CopiesRecords(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	records := []models.Metrics{{Strategy: models.StrategyMRGC, Conflicts: 1}}

	id, _ := s.SaveRun(ctx, config.ExperimentConfig{}, records)
	records[0].Conflicts = 9

	got, err := s.LoadMetrics(ctx, id)
	if err != nil {
		t.Fatalf("LoadMetrics() error = %v", err)
	}
	if got[0].Conflicts != 1 {
		t.Errorf("stored record was mutated through caller slice: %+v", got[0])
	}
}

func TestNewSQLiteStore_CreatesDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer s.Close()

	if s.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", s.Path(), dbPath)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	cfg := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 2, MaxEdges: 2, Seed: 3}
	records := runRecords(t, cfg)
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	id, err := s.SaveRun(ctx, cfg, records)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadMetrics(ctx, id)
	if err != nil {
		t.Fatalf("LoadMetrics() error = %v", err)
	}
	if len(got) != len(records) {
		t.Errorf("expected %d records after reopen, got %d", len(records), len(got))
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("first InitSchema() error = %v", err)
	}
	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("second InitSchema() error = %v", err)
	}

	version, err := getSchemaVersion(ctx, db)
	if err != nil {
		t.Fatalf("getSchemaVersion() error = %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("schema version = %d, want %d", version, SchemaVersion)
	}
}

func TestInitSchema_NewerVersion(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`, SchemaVersion+1); err != nil {
		t.Fatalf("bumping schema version: %v", err)
	}
	if err := InitSchema(ctx, db); err == nil {
		t.Error("expected error for newer schema version")
	}
}
