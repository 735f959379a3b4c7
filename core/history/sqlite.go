package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists substitution history to a SQLite database. One row
// is written per assignment so same-date counts are a single aggregate
// query.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS substitutions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT,
        date TEXT,
        substitute_id TEXT,
        record TEXT
    );
    CREATE INDEX IF NOT EXISTS idx_substitutions_date_sub
        ON substitutions(date, substitute_id);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// CountFor returns the number of substitutions recorded for the staff
// member on the given date.
func (s *SQLiteStore) CountFor(ctx context.Context, staffID, date string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM substitutions WHERE date = ? AND substitute_id = ?`,
		date, staffID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// RecordRun writes one row per selected assignment in the run.
func (s *SQLiteStore) RecordRun(ctx context.Context, rec RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, a := range rec.Assignments {
		b, err := json.Marshal(a)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO substitutions (run_id, date, substitute_id, record) VALUES (?, ?, ?, ?)`,
			rec.RunID, rec.Date, a.SubstituteID, string(b)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
