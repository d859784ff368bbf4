package repo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/pkgin-go/pkgin/internal/utils/logger"
	"github.com/schollz/progressbar/v3"
)

var log = logger.Logger()

// VerifyResult is the outcome of checking one repository summary's
// detached signature.
type VerifyResult struct {
	RepoURL  string
	OK       bool
	Duration time.Duration
	Error    error
}

// VerifyAll checks each repository's summary signature against keyring in
// parallel, the same bounded-worker, indexed-results shape as the
// teacher's rpmutils.VerifyAll.
func VerifyAll(ctx context.Context, summaries map[string]io.Reader, signatures map[string]io.Reader, keyring openpgp.EntityList, workers int) []VerifyResult {
	urls := make([]string, 0, len(summaries))
	for u := range summaries {
		urls = append(urls, u)
	}

	results := make([]VerifyResult, len(urls))
	jobs := make(chan int, len(urls))
	var wg sync.WaitGroup

	bar := progressbar.NewOptions(len(urls),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(200*time.Millisecond),
	)

	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				url := urls[idx]
				bar.Describe("verifying " + url)

				start := time.Now()
				err := verifyOne(summaries[url], signatures[url], keyring)
				if err != nil {
					log.Errorw("repository signature verification failed", "repo", url, "error", err)
				}
				results[idx] = VerifyResult{RepoURL: url, OK: err == nil, Duration: time.Since(start), Error: err}
				bar.Add(1)
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	return results
}

func verifyOne(summary, signature io.Reader, keyring openpgp.EntityList) error {
	if signature == nil {
		return fmt.Errorf("repo: no signature available")
	}
	_, err := openpgp.CheckDetachedSignature(keyring, summary, signature, nil)
	if err != nil {
		return fmt.Errorf("repo: signature check: %w", err)
	}
	return nil
}

// LoadKeyring reads an armored or binary OpenPGP public keyring.
func LoadKeyring(r io.Reader) (openpgp.EntityList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("repo: read keyring: %w", err)
	}
	if keyring, err := openpgp.ReadKeyRing(bytes.NewReader(data)); err == nil {
		return keyring, nil
	}
	return openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
}
