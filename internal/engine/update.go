package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgin-go/pkgin/internal/cache"
	"github.com/pkgin-go/pkgin/internal/repo"
)

// Update fetches every configured repository's pkg_summary, parses it, and
// replaces the catalog's remote package records with the result.
func (e *Context) Update(ctx context.Context) error {
	if len(e.Config.Repos) == 0 {
		return fmt.Errorf("%w: no repositories configured", ErrFatalEnv)
	}

	if err := e.Store.Exec(ctx, `DELETE FROM remote_pkg`); err != nil {
		return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
	}
	if err := e.Store.Exec(ctx, `DELETE FROM remote_deps`); err != nil {
		return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
	}

	for _, repoURL := range e.Config.Repos {
		summaryURL := repoURL + "/pkg_summary.gz"

		rc, err := e.Fetcher.Fetch(ctx, summaryURL)
		if err != nil {
			if !e.Confirm.Confirm(ctx, fmt.Sprintf("failed to fetch %s, skip it?", repoURL), false) {
				return fmt.Errorf("%w: %s: %v", ErrRecoverableFetch, repoURL, err)
			}
			continue
		}

		decompressed, err := repo.Decompress(summaryURL, rc)
		if err != nil {
			rc.Close()
			return fmt.Errorf("%w: %s: %v", ErrFatalCatalog, repoURL, err)
		}
		entries, err := repo.ParseSummary(repoURL, decompressed)
		rc.Close()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFatalCatalog, repoURL, err)
		}

		for _, pkg := range entries {
			if err := e.Store.Exec(ctx,
				`INSERT INTO remote_pkg (stem, version, repo_url, comment, file_size, size_pkg, conflicts) VALUES (?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(stem, version, repo_url) DO UPDATE SET comment = excluded.comment,
					file_size = excluded.file_size, size_pkg = excluded.size_pkg, conflicts = excluded.conflicts`,
				pkg.Stem, pkg.Version, repoURL, pkg.Comment, pkg.FileSize, pkg.SizePkg, strings.Join(pkg.Conflicts, " ")); err != nil {
				return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
			}
		}
		log.Infow("updated repository", "repo", repoURL, "packages", len(entries))
	}

	return e.Reload(ctx)
}

// Clean empties the archive cache.
func (e *Context) Clean(opts cache.CleanOptions) (*cache.CleanResult, error) {
	result, err := cache.Clean(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalEnv, err)
	}
	return result, nil
}
