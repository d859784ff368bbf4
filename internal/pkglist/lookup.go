package pkglist

import (
	"sort"

	"github.com/pkgin-go/pkgin/internal/pkgname"
)

// UniquePkg returns the greatest Dewey-versioned entry whose stem matches
// name, or the exact entry if name is itself in exact "stem-version" form.
func UniquePkg(list []ListEntry, name string) (ListEntry, bool) {
	if pkgname.ExactFormat(name) {
		for _, e := range list {
			if e.Full() == name {
				return e, true
			}
		}
		return ListEntry{}, false
	}

	var best ListEntry
	found := false
	dewey := pkgname.Dewey{}
	for _, e := range list {
		if e.Stem != name {
			continue
		}
		if !found || dewey.Compare(e.Version, best.Version) > 0 {
			best = e
			found = true
		}
	}
	return best, found
}

// FindExactPkg matches arg against full names (if arg is exact form) or
// stems (otherwise), returning the first match found.
func FindExactPkg(list []ListEntry, arg string) (ListEntry, bool) {
	exact := pkgname.ExactFormat(arg)
	for _, e := range list {
		if exact {
			if e.Full() == arg {
				return e, true
			}
		} else if e.Stem == arg {
			return e, true
		}
	}
	return ListEntry{}, false
}

// MapPkgToDep returns the first entry whose full name satisfies depend.
// Callers that keep list sorted by descending version per stem get the
// greatest matching version as the "first hit".
func MapPkgToDep(list []ListEntry, depend string) (ListEntry, bool) {
	pattern := pkgname.ParsePattern(depend)
	for _, e := range list {
		if pattern.Satisfies(e.Full()) {
			return e, true
		}
	}
	return ListEntry{}, false
}

// SortDescendingByVersion sorts entries of a single stem (or a mixed list
// where per-stem ordering still matters) so that the greatest version
// comes first, matching the remote list's "kept sorted" invariant.
func SortDescendingByVersion(list []ListEntry) {
	dewey := pkgname.Dewey{}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Stem != b.Stem {
			return a.Stem < b.Stem
		}
		return dewey.Compare(a.Version, b.Version) > 0
	})
}
