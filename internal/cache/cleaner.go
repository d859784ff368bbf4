package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkgin-go/pkgin/internal/config"
	fileutil "github.com/pkgin-go/pkgin/internal/utils/file"
)

// CleanOptions defines what cache artifacts should be removed.
type CleanOptions struct {
	RepoFilter string // optional repository directory name filter, empty clears everything
	DryRun     bool   // report actions without deleting anything
}

// CleanResult contains the outcome of a cache cleanup run.
type CleanResult struct {
	RemovedPaths []string
	SkippedPaths []string
}

// Clean empties the package archive cache according to the provided options.
func Clean(opts CleanOptions) (*CleanResult, error) {
	targets, missing, err := gatherTargets(opts)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(targets))
	skippedSet := make(map[string]struct{}, len(missing))
	for _, path := range missing {
		skippedSet[path] = struct{}{}
	}

	for _, target := range targets {
		exists, err := pathExists(target)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", target, err)
		}
		if !exists {
			skippedSet[target] = struct{}{}
			continue
		}

		if opts.DryRun {
			removed = append(removed, target)
			continue
		}

		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("removing %s: %w", target, err)
		}
		removed = append(removed, target)
	}

	sort.Strings(removed)

	skipped := make([]string, 0, len(skippedSet))
	for path := range skippedSet {
		skipped = append(skipped, path)
	}
	sort.Strings(skipped)

	return &CleanResult{
		RemovedPaths: removed,
		SkippedPaths: skipped,
	}, nil
}

func gatherTargets(opts CleanOptions) ([]string, []string, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving cache directory: %w", err)
	}

	pkgRoot := filepath.Join(cacheDir, "pkgCache")
	if err := ensureSubPath(cacheDir, pkgRoot); err != nil {
		return nil, nil, err
	}

	if opts.RepoFilter != "" {
		target := filepath.Join(pkgRoot, opts.RepoFilter)
		if err := ensureSubPath(pkgRoot, target); err != nil {
			return nil, nil, err
		}

		exists, err := pathExists(target)
		if err != nil {
			return nil, nil, fmt.Errorf("checking %s: %w", target, err)
		}
		if exists {
			return []string{target}, nil, nil
		}
		return nil, nil, nil
	}

	entries, err := os.ReadDir(pkgRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil // No package cache directory = no targets, no missing
		}
		return nil, nil, fmt.Errorf("listing package cache directory: %w", err)
	}

	targets := make([]string, 0, len(entries))
	for _, entry := range entries {
		target := filepath.Join(pkgRoot, entry.Name())
		if err := ensureSubPath(pkgRoot, target); err != nil {
			return nil, nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil, nil
}

func ensureSubPath(base, target string) error {
	ok, err := fileutil.IsSubPath(base, target)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("refusing to operate on %s because it is outside %s", target, base)
	}
	return nil
}

func pathExists(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("path must not be empty")
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
