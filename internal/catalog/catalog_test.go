package catalog_test

import (
	"context"
	"testing"

	"github.com/pkgin-go/pkgin/internal/catalog"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	assert.NoError(t, s.CheckSchema(ctx))
}

func TestUpsertAndListLocalPackage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.UpsertLocalPackage(ctx, pkglist.ListEntry{
		Identity: pkglist.Identity{Stem: "foo", Version: "1.0"},
		Comment:  "a test package",
		SizePkg:  1024,
	})
	require.NoError(t, err)

	list, err := s.LocalPackages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "foo", list[0].Stem)
	assert.Equal(t, "1.0", list[0].Version)

	err = s.UpsertLocalPackage(ctx, pkglist.ListEntry{
		Identity: pkglist.Identity{Stem: "foo", Version: "2.0"},
		SizePkg:  2048,
	})
	require.NoError(t, err)

	list, err = s.LocalPackages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2.0", list[0].Version)
}

func TestKeepUnkeep(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetKeep(ctx, "foo", true))
	require.NoError(t, s.SetKeep(ctx, "bar", true))

	kept, err := s.KeptStems(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"foo", "bar"}, kept)

	require.NoError(t, s.SetKeep(ctx, "foo", false))
	kept, err = s.KeptStems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar"}, kept)
}

func TestResetClearsState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertLocalPackage(ctx, pkglist.ListEntry{
		Identity: pkglist.Identity{Stem: "foo", Version: "1.0"},
	}))
	require.NoError(t, s.Reset(ctx))

	list, err := s.LocalPackages(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, s.CheckSchema(ctx))
}

func TestRepositoriesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRepositories(ctx, []string{"https://a", "https://b"}))
	repos, err := s.Repositories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, repos)
}
