package pkgname

import "strings"

// Full is a parsed "stem-version" full package name.
type Full struct {
	Stem    string
	Version string
}

// String reassembles the canonical full name.
func (f Full) String() string {
	if f.Version == "" {
		return f.Stem
	}
	return f.Stem + "-" + f.Version
}

// ExactFormat reports whether name is a fully-qualified "stem-version"
// string: the character following the last '-' is a decimal digit.
func ExactFormat(name string) bool {
	idx := strings.LastIndex(name, "-")
	if idx < 0 || idx == len(name)-1 {
		return false
	}
	c := name[idx+1]
	return c >= '0' && c <= '9'
}

// ParseFull splits a full name into stem and version. It returns ok=false
// if name is not in exact "stem-version" form.
func ParseFull(name string) (Full, bool) {
	if !ExactFormat(name) {
		return Full{}, false
	}
	idx := strings.LastIndex(name, "-")
	return Full{Stem: name[:idx], Version: name[idx+1:]}, true
}

// VersionCheck compares the version parts of two full names and returns 1
// if a's version is Dewey-greater than b's, else 2. If one side lacks a
// parseable version, the side that has one "wins" (returns its index);
// if both lack one, it returns 2, matching the source tool's convention.
func VersionCheck(aFull, bFull string) int {
	a, aok := ParseFull(aFull)
	b, bok := ParseFull(bFull)

	switch {
	case aok && !bok:
		return 1
	case !aok && bok:
		return 2
	case !aok && !bok:
		return 2
	}

	if (Dewey{}).Compare(a.Version, b.Version) > 0 {
		return 1
	}
	return 2
}

// StemFromDepend reduces a dependency pattern to its stem: strip from the
// first metacharacter in "{<>[]?*", trim a trailing '-', then strip a
// trailing dotted version suffix if one remains. Idempotent: calling it
// again on its own output returns the same stem.
func StemFromDepend(pattern string) string {
	cut := strings.IndexAny(pattern, "{<>[]?*")
	stem := pattern
	if cut >= 0 {
		stem = pattern[:cut]
	}
	stem = strings.TrimSuffix(stem, "-")

	if idx := strings.LastIndex(stem, "-"); idx >= 0 {
		suffix := stem[idx+1:]
		if suffix != "" && strings.Contains(suffix, ".") && startsWithDigit(suffix) {
			stem = stem[:idx]
		}
	}
	return stem
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}
