package repo_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/pkgin-go/pkgin/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	gw.Write([]byte("hello"))
	require.NoError(t, gw.Close())

	r, err := repo.Decompress("pkg_summary.gz", &buf)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestDecompressPassthroughUnknownExtension(t *testing.T) {
	r, err := repo.Decompress("pkg_summary", bytes.NewBufferString("plain"))
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(data))
}

func TestParseSummaryParsesBlocks(t *testing.T) {
	summary := "PKGNAME=foo-1.0\n" +
		"COMMENT=a test package\n" +
		"SIZE_PKG=2048\n" +
		"FILE_SIZE=1024\n" +
		"\n" +
		"PKGNAME=bar-2.0\n" +
		"COMMENT=another package\n" +
		"\n"

	entries, err := repo.ParseSummary("http://repo", bytes.NewBufferString(summary))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "foo", entries[0].Stem)
	assert.Equal(t, "1.0", entries[0].Version)
	assert.Equal(t, int64(2048), entries[0].SizePkg)
	assert.Equal(t, int64(1024), entries[0].FileSize)

	assert.Equal(t, "bar", entries[1].Stem)
	assert.Equal(t, int64(-1), entries[1].FileSize)
}
