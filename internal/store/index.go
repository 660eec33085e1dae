package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/calltape/calltape/internal/record"
)

//go:embed schema.sql
var schemaSQL string

// Index is a SQLite catalog over a recordings directory.
//
// The directory remains the source of truth for records; the index exists so
// listing and stats queries do not have to re-read every file. Rebuild scans
// the directory and replaces the catalog contents.
type Index struct {
	db *sql.DB
}

// OpenIndex creates or opens a SQLite catalog at the given path.
// Applies required pragmas and the schema automatically.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to index: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the catalog database.
func (ix *Index) Close() error {
	if ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Entry is one cataloged recording.
type Entry struct {
	Filename     string `json:"filename"`
	Identifier   string `json:"identifier"`
	ClassName    string `json:"class_name,omitempty"`
	FunctionName string `json:"function_name"`
	Success      bool   `json:"success"`
	RecordedAt   string `json:"recorded_at"`
}

// Stats summarizes the catalog.
type Stats struct {
	Total       int `json:"total"`
	Succeeded   int `json:"succeeded"`
	Failed      int `json:"failed"`
	Identifiers int `json:"identifiers"`
}

// Rebuild replaces the catalog contents with the current state of the
// recordings directory. Idempotent: rebuilding twice yields the same rows.
//
// A file that cannot be read or parsed fails the whole rebuild; the
// transaction rolls back and the previous catalog contents survive.
func (ix *Index) Rebuild(ctx context.Context, st *Store) error {
	filenames, err := st.FindAll()
	if err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rebuild index: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM recordings`); err != nil {
		return fmt.Errorf("rebuild index: clear: %w", err)
	}

	for _, filename := range filenames {
		rec, err := st.Read(filename)
		if err != nil {
			return fmt.Errorf("rebuild index: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recordings
			(filename, identifier, class_name, function_name, success, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			filename,
			rec.Identifier(),
			rec.ClassName,
			rec.FunctionName,
			rec.Success,
			record.TimestampSegment(filename),
		)
		if err != nil {
			return fmt.Errorf("rebuild index: insert %s: %w", filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rebuild index: commit: %w", err)
	}

	return nil
}

// List returns cataloged recordings, optionally filtered by function
// identifier. Results ordered by recorded_at ASC, filename ASC for
// deterministic output.
func (ix *Index) List(ctx context.Context, identifier string) ([]Entry, error) {
	query := `
		SELECT filename, identifier, class_name, function_name, success, recorded_at
		FROM recordings
	`
	var args []any
	if identifier != "" {
		query += ` WHERE identifier = ?`
		args = append(args, identifier)
	}
	query += ` ORDER BY recorded_at ASC, filename ASC`

	rows, err := ix.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Filename, &e.Identifier, &e.ClassName, &e.FunctionName, &e.Success, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan recording entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recording entries: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Stats returns aggregate counts over the catalog.
func (ix *Index) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := ix.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(success), 0),
			COALESCE(SUM(1 - success), 0),
			COUNT(DISTINCT identifier)
		FROM recordings
	`).Scan(&s.Total, &s.Succeeded, &s.Failed, &s.Identifiers)
	if err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	return s, nil
}
