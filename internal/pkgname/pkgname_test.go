package pkgname_test

import (
	"testing"

	"github.com/pkgin-go/pkgin/internal/pkgname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactFormat(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"foo-1.0", true},
		{"foo-bar", false},
		{"foo", false},
		{"foo-1.0nb1", true},
		{"foo-", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pkgname.ExactFormat(tc.name), tc.name)
	}
}

func TestDeweyCompare(t *testing.T) {
	d := pkgname.Dewey{}
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.1", "1.0", 1},
		{"1.0", "1.1", -1},
		{"1.0alpha1", "1.0", -1},
		{"1.0beta1", "1.0alpha1", 1},
		{"1.0rc1", "1.0pre1", 1},
		{"1.0", "1.0rc1", 1},
		{"1.2.3nb4", "1.2.3nb3", 1},
		{"1.2.3nb1", "1.2.3", 1},
		{"5.1.25", "5.1.20", 1},
		{"5.5.20", "5.1.25", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, d.Compare(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestVersionCheck(t *testing.T) {
	assert.Equal(t, 1, pkgname.VersionCheck("foo-2.0", "foo-1.0"))
	assert.Equal(t, 2, pkgname.VersionCheck("foo-1.0", "foo-2.0"))
	assert.Equal(t, 1, pkgname.VersionCheck("foo-1.0", "bar"))
	assert.Equal(t, 2, pkgname.VersionCheck("bar", "foo-1.0"))
	assert.Equal(t, 2, pkgname.VersionCheck("bar", "baz"))
}

func TestStemFromDependIdempotent(t *testing.T) {
	cases := []string{
		"foo>=1.2",
		"foo-[0-9]*",
		"foo-{1.0,2.0}",
		"foo-1.0",
		"plainname",
		"foo<=2.0.1",
	}
	for _, s := range cases {
		once := pkgname.StemFromDepend(s)
		twice := pkgname.StemFromDepend(once)
		assert.Equal(t, once, twice, "not idempotent for %q", s)
	}
}

func TestStemFromDependRules(t *testing.T) {
	assert.Equal(t, "foo", pkgname.StemFromDepend("foo>=1.2"))
	assert.Equal(t, "foo", pkgname.StemFromDepend("foo-[0-9]*"))
	assert.Equal(t, "foo", pkgname.StemFromDepend("foo-{1.0,2.0}"))
	assert.Equal(t, "foo", pkgname.StemFromDepend("foo-1.0"))
	assert.Equal(t, "plainname", pkgname.StemFromDepend("plainname"))
}

func TestPatternExact(t *testing.T) {
	p := pkgname.ParsePattern("foo-1.0")
	require.True(t, p.Satisfies("foo-1.0"))
	require.False(t, p.Satisfies("foo-1.1"))
}

func TestPatternInequality(t *testing.T) {
	p := pkgname.ParsePattern("foo>=1.2")
	assert.Equal(t, "foo", p.Stem())
	assert.True(t, p.Satisfies("foo-1.2"))
	assert.True(t, p.Satisfies("foo-1.3"))
	assert.False(t, p.Satisfies("foo-1.1"))
	assert.False(t, p.Satisfies("bar-1.3"))
}

func TestPatternGlob(t *testing.T) {
	p := pkgname.ParsePattern("foo-[0-9]*")
	assert.True(t, p.Satisfies("foo-1.0"))
	assert.True(t, p.Satisfies("foo-9.9.9"))
	assert.False(t, p.Satisfies("foo-alpha"))
}

func TestPatternBraceAlternation(t *testing.T) {
	p := pkgname.ParsePattern("foo-{1.0,2.0}")
	assert.True(t, p.Satisfies("foo-1.0"))
	assert.True(t, p.Satisfies("foo-2.0"))
	assert.False(t, p.Satisfies("foo-3.0"))
}
