package cache_test

import (
	"testing"

	"github.com/pkgin-go/pkgin/internal/cache"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSpaceSumsNeededBytes(t *testing.T) {
	dir := t.TempDir()
	toFetch := []pkglist.ImpactEntry{
		{Identity: pkglist.Identity{Stem: "foo", Version: "1.0"}, FileSize: 1000},
	}
	impact := []pkglist.ImpactEntry{
		{Identity: pkglist.Identity{Stem: "foo", Version: "1.0"}, SizePkg: 2000, OldSizePkg: -1},
		{Identity: pkglist.Identity{Stem: "bar", Version: "2.0"}, SizePkg: 500, OldSizePkg: 300},
	}

	report, err := cache.CheckSpace(toFetch, impact, dir, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), report.CacheBytesNeeded)
	assert.Equal(t, int64(2200), report.InstallBytesNeeded)
	assert.True(t, report.CacheBytesFree > 0)
}
