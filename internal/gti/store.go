package gti

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/sot/chandra-time/internal/xtime"
)

// ErrSetNotFound is returned when a named range set is not in the catalog.
var ErrSetNotFound = errors.New("range set not found")

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS gti_sets (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS gti_ranges (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    set_id    INTEGER NOT NULL REFERENCES gti_sets(id) ON DELETE CASCADE,
    seq       INTEGER NOT NULL,
    start_met REAL NOT NULL,
    stop_met  REAL NOT NULL,
    UNIQUE(set_id, seq)
);
`

// SetInfo describes a stored range set.
type SetInfo struct {
	Name      string
	Ranges    int
	UpdatedAt time.Time
}

// Store is a catalog of named range lists in a local SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the catalog at dbPath, enables WAL mode and
// busy timeout, and creates the schema tables if they do not exist.
func OpenStore(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("gti: open catalog: %w", err)
	}

	// SQLite only supports a single writer; one connection avoids
	// SQLITE_BUSY contention between pooled connections that each need
	// their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("gti: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("gti: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a named range list, replacing any previous ranges under
// the same name in a single transaction.
func (s *Store) Save(ctx context.Context, name string, l *RangeList) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("gti: begin tx for save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsert = `
		INSERT INTO gti_sets (name, updated_at)
		VALUES (?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsert, name); err != nil {
		return fmt.Errorf("gti: upsert set %q: %w", name, err)
	}

	var setID int64
	if err := tx.QueryRowContext(ctx, "SELECT id FROM gti_sets WHERE name = ?", name).Scan(&setID); err != nil {
		return fmt.Errorf("gti: look up set %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM gti_ranges WHERE set_id = ?", setID); err != nil {
		return fmt.Errorf("gti: clear old ranges for %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO gti_ranges (set_id, seq, start_met, stop_met) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("gti: prepare range insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range l.Ranges() {
		if _, err := stmt.ExecContext(ctx, setID, i, r.METStart(), r.METStop()); err != nil {
			return fmt.Errorf("gti: insert range %d of %q: %w", i, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("gti: commit save of %q: %w", name, err)
	}
	return nil
}

// Load rebuilds a named range list. Endpoint instants are derived from
// base, so they share its leap-second table and reference epoch.
func (s *Store) Load(ctx context.Context, name string, base *xtime.Time) (*RangeList, error) {
	var setID int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM gti_sets WHERE name = ?", name).Scan(&setID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("gti: %q: %w", name, ErrSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("gti: look up set %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT start_met, stop_met FROM gti_ranges WHERE set_id = ? ORDER BY seq", setID)
	if err != nil {
		return nil, fmt.Errorf("gti: query ranges of %q: %w", name, err)
	}
	defer rows.Close()

	l := &RangeList{}
	for rows.Next() {
		var start, stop float64
		if err := rows.Scan(&start, &stop); err != nil {
			return nil, fmt.Errorf("gti: scan range of %q: %w", name, err)
		}
		l.OrRange(NewRangeMET(base, start, stop))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gti: iterate ranges of %q: %w", name, err)
	}
	return l, nil
}

// List returns every stored set, most recently updated first.
func (s *Store) List(ctx context.Context) ([]SetInfo, error) {
	const q = `
		SELECT s.name, COUNT(r.id), s.updated_at
		FROM gti_sets s LEFT JOIN gti_ranges r ON r.set_id = s.id
		GROUP BY s.id
		ORDER BY s.updated_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("gti: list sets: %w", err)
	}
	defer rows.Close()

	var out []SetInfo
	for rows.Next() {
		var info SetInfo
		if err := rows.Scan(&info.Name, &info.Ranges, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("gti: scan set info: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gti: iterate sets: %w", err)
	}
	return out, nil
}

// Delete removes a named set and its ranges.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM gti_sets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("gti: delete set %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("gti: %q: %w", name, ErrSetNotFound)
	}
	return nil
}
