// Package fetch provides the default Fetcher implementation and the bounded
// worker pool that downloads an impact set's package archives into the
// local cache, adapted from the teacher's pkgfetcher worker pool.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/pkgin-go/pkgin/internal/utils/logger"
)

var log = logger.Logger()

// Fetcher opens a readable stream for url. Implementations are expected to
// dispatch on scheme (http/https, file, ftp).
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// HTTPFetcher is the default Fetcher: http/https via net/http, file:// via
// the local filesystem, and ftp via net/url-dialed connections.
type HTTPFetcher struct {
	Client *http.Client
}

// NewFetcher returns a Fetcher using http.DefaultClient.
func NewFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: http.DefaultClient}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := f.Client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch: %s: %s", rawURL, resp.Status)
		}
		return resp.Body, nil
	case "ftp":
		return fetchFTP(ctx, u)
	default:
		return nil, fmt.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
}
