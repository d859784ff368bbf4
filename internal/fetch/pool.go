package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/schollz/progressbar/v3"
)

// Confirmer is the subset of internal/confirm's interface the pool needs:
// asking the user whether to tolerate a failed download and continue.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string, def bool) bool
}

// Pool downloads a set of impact entries into a cache directory using a
// bounded number of concurrent workers, mirroring the teacher's
// pkgfetcher.FetchPackages worker pool but keyed on package identity
// instead of raw URLs, and tolerating individual failures via Confirmer
// instead of only logging them.
type Pool struct {
	Fetcher  Fetcher
	Confirm  Confirmer
	Workers  int
	CacheDir string
	RepoURL  func(pkglist.ImpactEntry) string
}

// job pairs an entry with the slot in results it must fill in, so the
// caller gets back entries annotated with FileSize=-1 for tolerated
// failures without needing a mutex-guarded map.
type job struct {
	index int
	entry pkglist.ImpactEntry
}

// Run downloads every entry needing a fetch (see cache.Plan) and returns
// the entries with FileSize set to -1 for any download the user chose to
// tolerate. A download failure the user does not tolerate aborts the pool
// and returns its error.
func (p *Pool) Run(ctx context.Context, entries []pkglist.ImpactEntry) ([]pkglist.ImpactEntry, error) {
	out := append([]pkglist.ImpactEntry(nil), entries...)
	if len(out) == 0 {
		return out, nil
	}

	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan job, len(out))
	errs := make(chan error, 1)
	var wg sync.WaitGroup
	var mu sync.Mutex
	aborted := false

	bar := progressbar.NewOptions(len(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(200*time.Millisecond),
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				mu.Lock()
				stop := aborted
				mu.Unlock()
				if stop {
					continue
				}

				bar.Describe(j.entry.Full())
				if err := p.fetchOne(ctx, j.entry); err != nil {
					if p.Confirm == nil || !p.Confirm.Confirm(ctx, fmt.Sprintf("download %s failed, continue anyway?", j.entry.Full()), false) {
						select {
						case errs <- fmt.Errorf("fetch: %s: %w", j.entry.Full(), err):
						default:
						}
						mu.Lock()
						aborted = true
						mu.Unlock()
					} else {
						mu.Lock()
						out[j.index].FileSize = -1
						mu.Unlock()
					}
				}
				bar.Add(1)
			}
		}()
	}

	for i, e := range out {
		jobs <- job{index: i, entry: e}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	select {
	case err := <-errs:
		return nil, err
	default:
		return out, nil
	}
}

// fetchOne downloads entry into a uniquely named temp file in CacheDir and
// renames it onto the final archive path only once the transfer completes,
// so a worker killed mid-download (or racing a concurrent run against the
// same cache) never leaves a partial .tgz at the name cache.Plan checks.
func (p *Pool) fetchOne(ctx context.Context, entry pkglist.ImpactEntry) error {
	if err := os.MkdirAll(p.CacheDir, 0755); err != nil {
		return err
	}

	rc, err := p.Fetcher.Fetch(ctx, p.RepoURL(entry))
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp := filepath.Join(p.CacheDir, entry.Full()+".tgz."+uuid.New().String()+".part")
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	dest := filepath.Join(p.CacheDir, entry.Full()+".tgz")
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
