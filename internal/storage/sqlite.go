// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/4zj9/pairbench/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		train_source TEXT NOT NULL,
		eval_source TEXT NOT NULL,
		train_count INTEGER NOT NULL,
		eval_count INTEGER NOT NULL,
		train_provenance TEXT NOT NULL,
		eval_provenance TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

	CREATE TABLE IF NOT EXISTS variant_results (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		variant TEXT NOT NULL,
		accuracy REAL,
		precision REAL,
		recall REAL,
		f1 REAL,
		training_time_seconds REAL,
		failed INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRun inserts a run and its comparison-table entries in a transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *models.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, train_source, eval_source, train_count, eval_count, train_provenance, eval_provenance, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.TrainSource, run.EvalSource, run.TrainCount, run.EvalCount,
		string(run.TrainProvenance), string(run.EvalProvenance), run.CreatedAt,
	)
	if err != nil {
		return err
	}

	if run.Table != nil {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO variant_results (run_id, position, variant, accuracy, precision, recall, f1, training_time_seconds, failed, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, r := range run.Table.Results {
			var acc, prec, rec, f1, tt sql.NullFloat64
			if r.Metrics != nil {
				acc = sql.NullFloat64{Float64: r.Metrics.Accuracy, Valid: true}
				prec = sql.NullFloat64{Float64: r.Metrics.Precision, Valid: true}
				rec = sql.NullFloat64{Float64: r.Metrics.Recall, Valid: true}
				f1 = sql.NullFloat64{Float64: r.Metrics.F1, Valid: true}
				tt = sql.NullFloat64{Float64: r.Metrics.TrainingTimeSeconds, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, run.ID, i, r.Variant, acc, prec, rec, f1, tt, boolToInt(r.Failed), r.Error); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// GetRun returns a run with its comparison table by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	var trainProv, evalProv string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, train_source, eval_source, train_count, eval_count, train_provenance, eval_provenance, created_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.TrainSource, &run.EvalSource, &run.TrainCount, &run.EvalCount,
		&trainProv, &evalProv, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	run.TrainProvenance = models.Provenance(trainProv)
	run.EvalProvenance = models.Provenance(evalProv)

	table, err := s.loadTable(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Table = table
	return &run, nil
}

func (s *SQLiteStorage) loadTable(ctx context.Context, runID string) (*models.ComparisonTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT variant, accuracy, precision, recall, f1, training_time_seconds, failed, error
		 FROM variant_results WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := &models.ComparisonTable{}
	for rows.Next() {
		var r models.VariantResult
		var acc, prec, rec, f1, tt sql.NullFloat64
		var failed int
		if err := rows.Scan(&r.Variant, &acc, &prec, &rec, &f1, &tt, &failed, &r.Error); err != nil {
			return nil, err
		}
		r.Failed = failed != 0
		if !r.Failed {
			r.Metrics = &models.Metrics{
				Model:               r.Variant,
				Accuracy:            acc.Float64,
				Precision:           prec.Float64,
				Recall:              rec.Float64,
				F1:                  f1.Float64,
				TrainingTimeSeconds: tt.Float64,
			}
		}
		table.Append(r)
	}
	return table, rows.Err()
}

// ListRuns returns runs newest-first with offset and limit, comparison tables included.
func (s *SQLiteStorage) ListRuns(ctx context.Context, offset, limit int) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs := make([]*models.Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// DeleteRun removes a run and its entries by ID.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	return err
}

// CountRuns returns the total number of persisted runs.
func (s *SQLiteStorage) CountRuns(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
