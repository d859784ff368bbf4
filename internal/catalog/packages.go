package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// LocalPackages returns every installed package as a ListEntry.
func (s *Store) LocalPackages(ctx context.Context) ([]pkglist.ListEntry, error) {
	var out []pkglist.ListEntry
	err := s.QueryRows(ctx,
		`SELECT stem, version, comment, size_pkg, keep, conflicts FROM local_pkg ORDER BY stem`,
		func(rows *sql.Rows) error {
			var e pkglist.ListEntry
			var keep int
			var conflicts string
			if err := rows.Scan(&e.Stem, &e.Version, &e.Comment, &e.SizePkg, &keep, &conflicts); err != nil {
				return err
			}
			e.Keep = keep != 0
			e.Conflicts = splitConflicts(conflicts)
			out = append(out, e)
			return nil
		})
	return out, err
}

// RemotePackages returns every package known from any configured
// repository as a ListEntry, sorted descending by version within a stem so
// callers that need the newest candidate first (UniquePkg, MapPkgToDep) get
// it for free.
func (s *Store) RemotePackages(ctx context.Context) ([]pkglist.ListEntry, error) {
	var out []pkglist.ListEntry
	err := s.QueryRows(ctx,
		`SELECT stem, version, comment, file_size, size_pkg, conflicts FROM remote_pkg ORDER BY stem`,
		func(rows *sql.Rows) error {
			var e pkglist.ListEntry
			var conflicts string
			if err := rows.Scan(&e.Stem, &e.Version, &e.Comment, &e.FileSize, &e.SizePkg, &conflicts); err != nil {
				return err
			}
			e.Conflicts = splitConflicts(conflicts)
			out = append(out, e)
			return nil
		})
	if err != nil {
		return nil, err
	}
	pkglist.SortDescendingByVersion(out)
	return out, nil
}

// LocalDepends returns the raw dependency patterns recorded for stem.
func (s *Store) LocalDepends(ctx context.Context, stem string) ([]string, error) {
	return s.dependsFrom(ctx, "local_deps", stem)
}

// RemoteDepends returns the raw dependency patterns recorded for stem.
func (s *Store) RemoteDepends(ctx context.Context, stem string) ([]string, error) {
	return s.dependsFrom(ctx, "remote_deps", stem)
}

func (s *Store) dependsFrom(ctx context.Context, table, stem string) ([]string, error) {
	var out []string
	err := s.QueryRows(ctx,
		"SELECT depend FROM "+table+" WHERE stem = ?",
		func(rows *sql.Rows) error {
			var depend string
			if err := rows.Scan(&depend); err != nil {
				return err
			}
			out = append(out, depend)
			return nil
		}, stem)
	return out, err
}

// ReverseDepends returns the stems of locally installed packages that
// directly depend on stem.
func (s *Store) ReverseDepends(ctx context.Context, stem string) ([]string, error) {
	var out []string
	err := s.QueryRows(ctx,
		`SELECT dependent_stem FROM local_reverse_deps WHERE stem = ?`,
		func(rows *sql.Rows) error {
			var dependent string
			if err := rows.Scan(&dependent); err != nil {
				return err
			}
			out = append(out, dependent)
			return nil
		}, stem)
	return out, err
}

// UpsertLocalPackage records or updates a package's installed state.
func (s *Store) UpsertLocalPackage(ctx context.Context, e pkglist.ListEntry) error {
	keep := 0
	if e.Keep {
		keep = 1
	}
	return s.Exec(ctx,
		`INSERT INTO local_pkg (stem, version, comment, size_pkg, keep, conflicts) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(stem) DO UPDATE SET version = excluded.version, comment = excluded.comment,
			size_pkg = excluded.size_pkg, keep = excluded.keep, conflicts = excluded.conflicts`,
		e.Stem, e.Version, e.Comment, e.SizePkg, keep, strings.Join(e.Conflicts, " "))
}

// splitConflicts parses a space-separated CONFLICTS column back into its
// individual dependency patterns, the same convention pkgsrc's pkg_summary
// uses for the field itself.
func splitConflicts(raw string) []string {
	return strings.Fields(raw)
}

// DeleteLocalPackage removes stem's installed-state record.
func (s *Store) DeleteLocalPackage(ctx context.Context, stem string) error {
	return s.Exec(ctx, `DELETE FROM local_pkg WHERE stem = ?`, stem)
}

// SetKeep marks or unmarks stem as kept (protected from autoremove).
func (s *Store) SetKeep(ctx context.Context, stem string, keep bool) error {
	if keep {
		return s.Exec(ctx,
			`INSERT INTO keep_local_pkgs (stem) VALUES (?) ON CONFLICT(stem) DO NOTHING`, stem)
	}
	return s.Exec(ctx, `DELETE FROM keep_local_pkgs WHERE stem = ?`, stem)
}

// KeptStems returns every stem currently marked kept.
func (s *Store) KeptStems(ctx context.Context) ([]string, error) {
	var out []string
	err := s.QueryRows(ctx, `SELECT stem FROM keep_local_pkgs ORDER BY stem`,
		func(rows *sql.Rows) error {
			var stem string
			if err := rows.Scan(&stem); err != nil {
				return err
			}
			out = append(out, stem)
			return nil
		})
	return out, err
}

// Repositories returns the configured repository URLs in priority order.
func (s *Store) Repositories(ctx context.Context) ([]string, error) {
	var out []string
	err := s.QueryRows(ctx,
		`SELECT url FROM repos WHERE enabled = 1 ORDER BY priority, url`,
		func(rows *sql.Rows) error {
			var url string
			if err := rows.Scan(&url); err != nil {
				return err
			}
			out = append(out, url)
			return nil
		})
	return out, err
}

// SetRepositories replaces the repository list with urls, in order.
func (s *Store) SetRepositories(ctx context.Context, urls []string) error {
	if err := s.Exec(ctx, `DELETE FROM repos`); err != nil {
		return err
	}
	for i, url := range urls {
		if err := s.Exec(ctx,
			`INSERT INTO repos (url, priority, enabled) VALUES (?, ?, 1)`, url, i); err != nil {
			return err
		}
	}
	return nil
}
