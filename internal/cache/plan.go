package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// Plan classifies every node against the on-disk cache and returns the
// subset still needing a network (or file://) fetch. A node is already
// satisfied when its cached archive exists and its size matches FileSize
// exactly, or when its source is a file:// URL (fetch degenerates to a
// symlink, handled by the caller once Plan has identified it).
func Plan(nodes []pkglist.ImpactEntry, cacheDir string) (toFetch []pkglist.ImpactEntry, err error) {
	for _, n := range nodes {
		if n.Computed != pkglist.ToInstall && n.Computed != pkglist.ToUpgrade {
			continue
		}

		if n.FileSize == -1 {
			continue // a previously tolerated fetch failure; never re-queued
		}

		if n.FileSize == 0 {
			log.Warnw("remote entry has no recorded file size, treating as needs-fetch", "pkg", n.Full())
			toFetch = append(toFetch, n)
			continue
		}

		path := filepath.Join(cacheDir, n.Full()+".tgz")
		info, statErr := os.Stat(path)
		switch {
		case statErr == nil && info.Size() == n.FileSize && n.FileSize > 0:
			continue // present and correct
		case statErr == nil && info.Mode()&os.ModeSymlink != 0:
			continue // file-scheme shortcut already in place
		default:
			toFetch = append(toFetch, n)
		}
	}
	return toFetch, nil
}

// IsFileScheme reports whether repoURL names a local path (file://) rather
// than a network location, the case where "fetching" is a symlink instead
// of a download.
func IsFileScheme(repoURL string) bool {
	return strings.HasPrefix(repoURL, "file://")
}

// LinkFileScheme symlinks a file:// source archive directly into the cache
// instead of copying it, the "file-scheme shortcut" from the cache state
// machine.
func LinkFileScheme(repoURL, cacheDir string, n pkglist.ImpactEntry) error {
	src := strings.TrimPrefix(repoURL, "file://")
	dest := filepath.Join(cacheDir, n.Full()+".tgz")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}
	_ = os.Remove(dest)
	if err := os.Symlink(src, dest); err != nil {
		return fmt.Errorf("cache: symlink %s: %w", n.Full(), err)
	}
	return nil
}
