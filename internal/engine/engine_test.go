package engine_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pkgin-go/pkgin/internal/catalog"
	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/pkgin-go/pkgin/internal/engine"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localEntry(stem string) pkglist.ListEntry {
	return pkglist.ListEntry{Identity: pkglist.Identity{Stem: stem, Version: "1"}}
}

type fakeInstaller struct{ installed []string }

func (f *fakeInstaller) Install(ctx context.Context, archive string, flags []string) error {
	f.installed = append(f.installed, archive)
	return nil
}

type fakeRemover struct{ removed []string }

func (f *fakeRemover) Remove(ctx context.Context, full string, flags []string) error {
	f.removed = append(f.removed, full)
	return nil
}

type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(ctx context.Context, prompt string, def bool) bool { return true }

type fakeFetcher struct{ body string }

func (f fakeFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func newTestEngine(t *testing.T) (*engine.Context, *fakeInstaller, *fakeRemover) {
	t.Helper()
	ctx := context.Background()
	store, err := catalog.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	installer := &fakeInstaller{}
	remover := &fakeRemover{}
	eng := &engine.Context{
		Store:     store,
		Config:    config.DefaultGlobalConfig(),
		Fetcher:   fakeFetcher{body: "archive"},
		Installer: installer,
		Remover:   remover,
		Confirm:   alwaysConfirm{},
	}
	require.NoError(t, eng.Reload(ctx))
	return eng, installer, remover
}

func TestInstallSimpleDependency(t *testing.T) {
	ctx := context.Background()
	eng, installer, _ := newTestEngine(t)

	require.NoError(t, eng.Store.Exec(ctx,
		`INSERT INTO remote_pkg (stem, version, repo_url, file_size, size_pkg) VALUES
		 ('foo', '1.0', 'http://r', 4, 10), ('bar', '2.0', 'http://r', 4, 10)`))
	require.NoError(t, eng.Store.Exec(ctx,
		`INSERT INTO remote_deps (stem, depend) VALUES ('foo', 'bar>=2.0')`))
	require.NoError(t, eng.Reload(ctx))
	eng.Config.Repos = []string{"http://r"}
	eng.Config.CacheDir = t.TempDir()

	require.NoError(t, eng.Install(ctx, []string{"foo"}))
	assert.Len(t, installer.installed, 2)

	local, err := eng.Store.LocalPackages(ctx)
	require.NoError(t, err)
	assert.Len(t, local, 2)
}

func TestInstallUpgradesStaleDependency(t *testing.T) {
	ctx := context.Background()
	eng, installer, remover := newTestEngine(t)

	require.NoError(t, eng.Store.UpsertLocalPackage(ctx, pkglist.ListEntry{
		Identity: pkglist.Identity{Stem: "bar", Version: "1.0"},
	}))
	require.NoError(t, eng.Store.Exec(ctx,
		`INSERT INTO remote_pkg (stem, version, repo_url, file_size, size_pkg) VALUES
		 ('foo', '1.0', 'http://r', 4, 10), ('bar', '2.0', 'http://r', 4, 10)`))
	require.NoError(t, eng.Store.Exec(ctx,
		`INSERT INTO remote_deps (stem, depend) VALUES ('foo', 'bar>=1.0')`))
	require.NoError(t, eng.Reload(ctx))
	eng.Config.Repos = []string{"http://r"}
	eng.Config.CacheDir = t.TempDir()

	require.NoError(t, eng.Install(ctx, []string{"foo"}))
	assert.Len(t, installer.installed, 2)
	assert.Equal(t, []string{"bar-1.0"}, remover.removed)

	local, err := eng.Store.LocalPackages(ctx)
	require.NoError(t, err)
	bar, ok := pkglist.UniquePkg(local, "bar")
	require.True(t, ok)
	assert.Equal(t, "2.0", bar.Version)
}

func TestRemoveWithReverseDeps(t *testing.T) {
	ctx := context.Background()
	eng, _, remover := newTestEngine(t)

	for _, stem := range []string{"libqux", "app-a", "app-b"} {
		require.NoError(t, eng.Store.UpsertLocalPackage(ctx, localEntry(stem)))
	}
	require.NoError(t, eng.Store.Exec(ctx,
		`INSERT INTO local_reverse_deps (stem, dependent_stem) VALUES ('libqux', 'app-a')`))
	require.NoError(t, eng.Store.Exec(ctx,
		`INSERT INTO local_reverse_deps (stem, dependent_stem) VALUES ('app-a', 'app-b')`))
	require.NoError(t, eng.Reload(ctx))

	require.NoError(t, eng.Remove(ctx, []string{"libqux"}))
	assert.Equal(t, []string{"app-b-1", "app-a-1", "libqux-1"}, remover.removed)
}

func TestRemoveIgnoresKeepFlag(t *testing.T) {
	ctx := context.Background()
	eng, _, remover := newTestEngine(t)

	require.NoError(t, eng.Store.UpsertLocalPackage(ctx, localEntry("foo")))
	require.NoError(t, eng.Reload(ctx))
	require.NoError(t, eng.Keep(ctx, []string{"foo"}))

	require.NoError(t, eng.Remove(ctx, []string{"foo"}))
	assert.Equal(t, []string{"foo-1"}, remover.removed)
}

func TestKeepProtectsFromAutoremove(t *testing.T) {
	ctx := context.Background()
	eng, _, remover := newTestEngine(t)

	require.NoError(t, eng.Store.UpsertLocalPackage(ctx, localEntry("foo")))
	require.NoError(t, eng.Reload(ctx))
	require.NoError(t, eng.Keep(ctx, []string{"foo"}))

	require.NoError(t, eng.Autoremove(ctx))
	assert.Empty(t, remover.removed)
}
