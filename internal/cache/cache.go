// Package cache manages the local archive cache: deciding which impact-set
// entries still need fetching, pre-flighting available disk space, and
// clearing cached archives on request.
package cache

import (
	"io/fs"
	"path/filepath"

	"github.com/pkgin-go/pkgin/internal/utils/logger"
)

var log = logger.Logger()

// DirSize sums the apparent size of every regular file under dir. A missing
// dir is treated as empty rather than an error, since an unpopulated cache
// is the common case on a fresh install.
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				return nil // dir itself doesn't exist yet
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
