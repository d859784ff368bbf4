package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgin-go/pkgin/internal/fetch"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherFetchesOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("archive-bytes"))
	}))
	defer srv.Close()

	f := fetch.NewFetcher()
	rc, err := f.Fetch(context.Background(), srv.URL+"/foo-1.0.tgz")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "archive-bytes", string(body))
}

func TestHTTPFetcherPropagatesNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := fetch.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.tgz")
	assert.Error(t, err)
}

func TestHTTPFetcherFileScheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo-1.0.tgz")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0644))

	f := fetch.NewFetcher()
	rc, err := f.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "local", string(body))
}

type fakeConfirmer struct{ allow bool }

func (f fakeConfirmer) Confirm(ctx context.Context, prompt string, def bool) bool { return f.allow }

type fakeFetcher struct{ fail map[string]bool }

func (f fakeFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if f.fail[rawURL] {
		return nil, assertErr
	}
	return io.NopCloser(newReader("data")), nil
}

var assertErr = errFake("simulated failure")

type errFake string

func (e errFake) Error() string { return string(e) }

func newReader(s string) io.Reader { return &stringReader{s: s} }

type stringReader struct {
	s   string
	pos int
}

func (r *stringReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.s) {
		return 0, io.EOF
	}
	n := copy(p, r.s[r.pos:])
	r.pos += n
	return n, nil
}

func TestPoolToleratesFailureWhenConfirmed(t *testing.T) {
	dir := t.TempDir()
	entries := []pkglist.ImpactEntry{
		{Identity: pkglist.Identity{Stem: "foo", Version: "1.0"}},
		{Identity: pkglist.Identity{Stem: "bar", Version: "2.0"}},
	}

	p := &fetch.Pool{
		Fetcher:  fakeFetcher{fail: map[string]bool{"http://r/bar-2.0": true}},
		Confirm:  fakeConfirmer{allow: true},
		Workers:  2,
		CacheDir: dir,
		RepoURL:  func(e pkglist.ImpactEntry) string { return "http://r/" + e.Full() },
	}

	out, err := p.Run(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, out, 2)

	var bar pkglist.ImpactEntry
	for _, e := range out {
		if e.Stem == "bar" {
			bar = e
		}
	}
	assert.Equal(t, int64(-1), bar.FileSize)
}

func TestPoolAbortsWhenNotConfirmed(t *testing.T) {
	dir := t.TempDir()
	entries := []pkglist.ImpactEntry{
		{Identity: pkglist.Identity{Stem: "foo", Version: "1.0"}},
	}

	p := &fetch.Pool{
		Fetcher:  fakeFetcher{fail: map[string]bool{"http://r/foo-1.0": true}},
		Confirm:  fakeConfirmer{allow: false},
		Workers:  1,
		CacheDir: dir,
		RepoURL:  func(e pkglist.ImpactEntry) string { return "http://r/" + e.Full() },
	}

	_, err := p.Run(context.Background(), entries)
	assert.Error(t, err)
}
