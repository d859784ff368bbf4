package catalog

import "context"

// createStatements defines every persistent and transient table the catalog
// uses. Transient tables (drydb) hold scratch state for an in-progress
// impact computation and are cleared at the start of each operation rather
// than dropped here.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS pkgdb (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS repos (
		url      TEXT PRIMARY KEY,
		priority INTEGER NOT NULL DEFAULT 0,
		enabled  INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS local_pkg (
		stem      TEXT PRIMARY KEY,
		version   TEXT NOT NULL,
		comment   TEXT NOT NULL DEFAULT '',
		size_pkg  INTEGER NOT NULL DEFAULT 0,
		keep      INTEGER NOT NULL DEFAULT 0,
		conflicts TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS remote_pkg (
		stem      TEXT NOT NULL,
		version   TEXT NOT NULL,
		repo_url  TEXT NOT NULL,
		comment   TEXT NOT NULL DEFAULT '',
		file_size INTEGER NOT NULL DEFAULT -1,
		size_pkg  INTEGER NOT NULL DEFAULT 0,
		conflicts TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (stem, version, repo_url)
	)`,
	`CREATE TABLE IF NOT EXISTS local_deps (
		stem   TEXT NOT NULL,
		depend TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS remote_deps (
		stem   TEXT NOT NULL,
		depend TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS local_reverse_deps (
		stem          TEXT NOT NULL,
		dependent_stem TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS keep_local_pkgs (
		stem TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS drydb (
		full      TEXT PRIMARY KEY,
		stem      TEXT NOT NULL,
		version   TEXT NOT NULL,
		level     INTEGER NOT NULL DEFAULT 0,
		computed  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_local_deps_stem ON local_deps (stem)`,
	`CREATE INDEX IF NOT EXISTS idx_remote_deps_stem ON remote_deps (stem)`,
	`CREATE INDEX IF NOT EXISTS idx_remote_pkg_stem ON remote_pkg (stem)`,
	`CREATE INDEX IF NOT EXISTS idx_local_reverse_deps_stem ON local_reverse_deps (stem)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS repos`,
	`DROP TABLE IF EXISTS local_pkg`,
	`DROP TABLE IF EXISTS remote_pkg`,
	`DROP TABLE IF EXISTS local_deps`,
	`DROP TABLE IF EXISTS remote_deps`,
	`DROP TABLE IF EXISTS local_reverse_deps`,
	`DROP TABLE IF EXISTS keep_local_pkgs`,
	`DROP TABLE IF EXISTS drydb`,
	`DROP TABLE IF EXISTS pkgdb`,
}

// ClearDrydb empties the transient impact-computation table; callers do
// this at the start of every install/remove/upgrade operation.
func (s *Store) ClearDrydb(ctx context.Context) error {
	return s.Exec(ctx, `DELETE FROM drydb`)
}
