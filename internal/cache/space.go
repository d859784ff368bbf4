package cache

import (
	"fmt"

	"github.com/pkgin-go/pkgin/internal/pkglist"
	"golang.org/x/sys/unix"
)

// SpaceReport summarizes a disk-space pre-check for an install/upgrade
// operation: bytes needed on the cache filesystem for downloads, and bytes
// needed on the install-root filesystem for the unpacked result.
type SpaceReport struct {
	CacheBytesNeeded  int64
	CacheBytesFree    int64
	InstallBytesNeeded int64
	InstallBytesFree  int64
}

// OK reports whether both filesystems have enough free space.
func (r SpaceReport) OK() bool {
	return r.CacheBytesNeeded <= r.CacheBytesFree && r.InstallBytesNeeded <= r.InstallBytesFree
}

// CheckSpace sums FileSize over the nodes still needing a fetch against the
// cache filesystem's free space, and sums SizePkg-OldSizePkg (floored at 0)
// over the whole impact set against the install root's free space. The
// check is not re-run if a later fetch failure sets FileSize=-1: that
// failure already means the node was excluded from the install, not that
// more space appeared.
func CheckSpace(toFetch, impact []pkglist.ImpactEntry, cacheDir, installRoot string) (SpaceReport, error) {
	var report SpaceReport

	for _, n := range toFetch {
		if n.FileSize > 0 {
			report.CacheBytesNeeded += n.FileSize
		}
	}
	for _, n := range impact {
		delta := n.SizePkg - n.OldSizePkg
		if n.OldSizePkg < 0 {
			delta = n.SizePkg
		}
		if delta > 0 {
			report.InstallBytesNeeded += delta
		}
	}

	cacheFree, err := freeBytes(cacheDir)
	if err != nil {
		return report, fmt.Errorf("cache: statfs %s: %w", cacheDir, err)
	}
	report.CacheBytesFree = cacheFree

	installFree, err := freeBytes(installRoot)
	if err != nil {
		return report, fmt.Errorf("cache: statfs %s: %w", installRoot, err)
	}
	report.InstallBytesFree = installFree

	return report, nil
}

func freeBytes(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
