// Package journal appends one row per compile invocation to a local sqlite
// database, so a later `dlc history` can list what was compiled, when, and
// whether it succeeded.
//
// Grounded on playbymail/ottomap's internal/stores/sqlite/store.go
// (embedded schema.sql, sql.Open("sqlite", path), sentinel errors) — the
// teacher's own go.mod lists modernc.org/sqlite but its own code never opens
// a database; this package is what promotes it to an exercised dependency,
// per the same pattern already noted for google/uuid.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaDDL string

var (
	ErrJournalClosed = errors.New("journal: already closed")
)

// Journal is an append-only log of compile records backed by sqlite.
type Journal struct {
	db *sql.DB
}

// Open creates (if needed) and opens the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	if j.db == nil {
		return ErrJournalClosed
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Record is one compile invocation's outcome.
type Record struct {
	ID           int64
	FilePath     string
	CompiledAt   time.Time
	ErrorCount   int
	WarningCount int
	Succeeded    bool
}

// Append inserts one compile record.
func (j *Journal) Append(ctx context.Context, filePath string, errorCount, warningCount int) error {
	if j.db == nil {
		return ErrJournalClosed
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO compile_records (file_path, compiled_at, error_count, warning_count, succeeded) VALUES (?, ?, ?, ?, ?)`,
		filePath, time.Now().UTC().Format(time.RFC3339), errorCount, warningCount, errorCount == 0,
	)
	return err
}

// Recent returns the most recent n compile records, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Record, error) {
	if j.db == nil {
		return nil, ErrJournalClosed
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, file_path, compiled_at, error_count, warning_count, succeeded
		 FROM compile_records ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var compiledAt string
		var succeeded int
		if err := rows.Scan(&r.ID, &r.FilePath, &compiledAt, &r.ErrorCount, &r.WarningCount, &succeeded); err != nil {
			return nil, err
		}
		r.CompiledAt, err = time.Parse(time.RFC3339, compiledAt)
		if err != nil {
			return nil, err
		}
		r.Succeeded = succeeded != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
