package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgin-go/pkgin/internal/cache"
	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCacheDir(t *testing.T, dir string) {
	t.Helper()
	previous := config.Global()
	cfg := config.DefaultGlobalConfig()
	cfg.CacheDir = dir
	config.SetGlobal(cfg)
	t.Cleanup(func() { config.SetGlobal(previous) })
}

func TestCleanRemovesRepoDirectories(t *testing.T) {
	dir := t.TempDir()
	withCacheDir(t, dir)

	pkgRoot := filepath.Join(dir, "pkgCache", "repoA")
	require.NoError(t, os.MkdirAll(pkgRoot, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgRoot, "foo-1.0.tgz"), []byte("x"), 0644))

	result, err := cache.Clean(cache.CleanOptions{})
	require.NoError(t, err)
	assert.Len(t, result.RemovedPaths, 1)

	_, statErr := os.Stat(pkgRoot)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanDryRunLeavesFilesInPlace(t *testing.T) {
	dir := t.TempDir()
	withCacheDir(t, dir)

	pkgRoot := filepath.Join(dir, "pkgCache", "repoA")
	require.NoError(t, os.MkdirAll(pkgRoot, 0755))

	result, err := cache.Clean(cache.CleanOptions{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, result.RemovedPaths, 1)

	_, statErr := os.Stat(pkgRoot)
	assert.NoError(t, statErr)
}
