package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"bfi-dashboard/models"
)

// SQLiteWriter archives cleaned films to a local SQLite database. Every
// writer instance is one run, identified by a UUID.
type SQLiteWriter struct {
	db    *sql.DB
	runID uuid.UUID
}

// NewSQLiteWriter opens (or creates) the database at path, runs schema
// migrations, and returns a writer for a fresh run.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	sw := &SQLiteWriter{db: db, runID: uuid.New()}
	if err := sw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return sw, nil
}

func (sw *SQLiteWriter) migrate() error {
	_, err := sw.db.Exec(`
		CREATE TABLE IF NOT EXISTS films (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT     NOT NULL,
			release_period REAL     NOT NULL,
			genre          TEXT     NOT NULL,
			gross          REAL     NOT NULL,
			title          TEXT     NOT NULL,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_films_run   ON films(run_id);
		CREATE INDEX IF NOT EXISTS idx_films_genre ON films(genre);
	`)
	return err
}

// RunID identifies the rows written by this writer.
func (sw *SQLiteWriter) RunID() uuid.UUID { return sw.runID }

// Write inserts all films under the current run in one transaction. Rows
// from earlier runs are kept.
func (sw *SQLiteWriter) Write(films []*models.Film) error {
	if len(films) == 0 {
		return nil
	}

	tx, err := sw.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(films); i += batchSize {
		end := i + batchSize
		if end > len(films) {
			end = len(films)
		}
		if err := sw.insertBatch(tx, films[i:end]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite: insert batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (sw *SQLiteWriter) insertBatch(tx *sql.Tx, batch []*models.Film) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*5)

	run := sw.runID.String()
	for _, f := range batch {
		valueStrings = append(valueStrings, "(?,?,?,?,?)")
		valueArgs = append(valueArgs, run, f.Period, f.Genre, f.Gross, f.Title)
	}

	query := fmt.Sprintf(`
		INSERT INTO films (run_id, release_period, genre, gross, title)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := tx.Exec(query, valueArgs...)
	return err
}

// FetchRun retrieves the films archived under runID in insertion order.
func (sw *SQLiteWriter) FetchRun(runID uuid.UUID) ([]*models.Film, error) {
	rows, err := sw.db.Query(`
		SELECT release_period, genre, gross, title
		FROM films
		WHERE run_id = ?
		ORDER BY id
	`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch run %s: %w", runID, err)
	}
	defer rows.Close()

	var films []*models.Film
	for rows.Next() {
		f := &models.Film{}
		if err := rows.Scan(&f.Period, &f.Genre, &f.Gross, &f.Title); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		films = append(films, f)
	}
	return films, rows.Err()
}

// Runs lists archived run IDs, oldest first.
func (sw *SQLiteWriter) Runs() ([]uuid.UUID, error) {
	rows, err := sw.db.Query(`
		SELECT run_id FROM films GROUP BY run_id ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list runs: %w", err)
	}
	defer rows.Close()

	var runs []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("sqlite: scan run: %w", err)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("sqlite: bad run id %q: %w", s, err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}

func (sw *SQLiteWriter) Close() error {
	return sw.db.Close()
}
