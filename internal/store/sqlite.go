package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/models"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements ResultStore using SQLite for persistence.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the database at dbPath and initializes
// its schema. The parent directory is created if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// SaveRun inserts the run and all of its records in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, cfg config.ExperimentConfig, records []models.Metrics) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (agents, slots, episodes, max_edges, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cfg.Agents, cfg.Slots, cfg.Episodes, cfg.MaxEdges, cfg.Seed,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metrics (run_id, episode, position, strategy, conflicts, delay, utilization, success_rate, throughput)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare metrics insert: %w", err)
	}
	defer stmt.Close()

	position := 0
	for i, m := range records {
		if i > 0 && m.Episode != records[i-1].Episode {
			position = 0
		}
		if _, err := stmt.ExecContext(ctx, runID, m.Episode, position, string(m.Strategy),
			m.Conflicts, m.Delay, m.Utilization, m.SuccessRate, m.Throughput); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns every run with its record count, oldest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.agents, r.slots, r.episodes, r.max_edges, r.seed, r.created_at,
		       (SELECT COUNT(*) FROM metrics m WHERE m.run_id = r.id)
		FROM runs r
		ORDER BY r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Config.Agents, &r.Config.Slots, &r.Config.Episodes,
			&r.Config.MaxEdges, &r.Config.Seed, &createdAt, &r.Records); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadMetrics returns a run's records in the order they were saved.
func (s *SQLiteStore) LoadMetrics(ctx context.Context, runID int64) ([]models.Metrics, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up run %d: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT episode, strategy, conflicts, delay, utilization, success_rate, throughput
		FROM metrics
		WHERE run_id = ?
		ORDER BY episode, position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	var records []models.Metrics
	for rows.Next() {
		var m models.Metrics
		var strategy string
		if err := rows.Scan(&m.Episode, &strategy, &m.Conflicts, &m.Delay,
			&m.Utilization, &m.SuccessRate, &m.Throughput); err != nil {
			return nil, fmt.Errorf("failed to scan metrics: %w", err)
		}
		if m.Strategy, err = models.ParseStrategy(strategy); err != nil {
			return nil, fmt.Errorf("run %d: %w", runID, err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
