// Package catalog wraps the local SQLite package database: the on-disk
// record of installed packages, the remote package lists fetched from
// repositories, and the transient tables used while building an impact set.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkgin-go/pkgin/internal/utils/logger"
	_ "modernc.org/sqlite"
)

var log = logger.Logger()

// SchemaVersion identifies the table layout CheckSchema expects. Bumping it
// forces a Reset on databases written by an older build.
const SchemaVersion = 1

// ErrCatalogOpen indicates the database file could not be opened or
// prepared; callers should treat this as fatal.
var ErrCatalogOpen = errors.New("catalog: open failed")

// ErrCatalogQuery wraps a query or exec failure against an already-open
// database; callers may recover by reporting the error and continuing.
var ErrCatalogQuery = errors.New("catalog: query failed")

// Store is a handle on the local SQLite package database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path, applies the
// pragmas pkgin relies on for single-writer, low-durability local state,
// and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogOpen, path, err)
	}
	db.SetMaxOpenConns(1) // locking_mode=EXCLUSIVE requires a single connection

	s := &Store{db: db}
	if err := s.applyPragmas(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogOpen, path, err)
	}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogOpen, path, err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

var pragmas = []string{
	"PRAGMA cache_size = -20000",
	"PRAGMA locking_mode = EXCLUSIVE",
	"PRAGMA synchronous = OFF",
	"PRAGMA journal_mode = MEMORY",
}

func (s *Store) applyPragmas(ctx context.Context) error {
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Exec runs a non-query statement (insert/update/delete/ddl).
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCatalogQuery, query, err)
	}
	return nil
}

// QueryValue runs a query expected to return a single scalar column from a
// single row, returning it as a string. A no-rows result is not an error;
// callers distinguish it by the returned empty string plus sql.ErrNoRows
// wrapped in err.
func (s *Store) QueryValue(ctx context.Context, query string, args ...any) (string, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %v", ErrCatalogQuery, query, err)
	}
	return value, nil
}

// QueryRows runs a query and invokes scan once per result row.
func (s *Store) QueryRows(ctx context.Context, query string, scan func(*sql.Rows) error, args ...any) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCatalogQuery, query, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCatalogQuery, query, err)
		}
	}
	return rows.Err()
}

// CheckSchema verifies the pkgdb metadata table reports the schema version
// this build expects.
func (s *Store) CheckSchema(ctx context.Context) error {
	value, err := s.QueryValue(ctx, `SELECT value FROM pkgdb WHERE key = 'schema_version'`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("catalog: schema_version not recorded")
		}
		return err
	}
	var got int
	if _, scanErr := fmt.Sscanf(value, "%d", &got); scanErr != nil || got != SchemaVersion {
		return fmt.Errorf("catalog: schema version mismatch: have %q want %d", value, SchemaVersion)
	}
	return nil
}

// Reset drops and recreates every table, discarding all local state. Callers
// must have already obtained user confirmation; Reset itself does not
// prompt.
func (s *Store) Reset(ctx context.Context) error {
	log.Warnw("resetting package database")
	for _, stmt := range dropStatements {
		if err := s.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return s.ensureSchema(ctx)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range createStatements {
		if err := s.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return s.Exec(ctx,
		`INSERT INTO pkgdb (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprintf("%d", SchemaVersion))
}
