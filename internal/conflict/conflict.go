// Package conflict checks an impact set against the locally installed
// package set for two kinds of problems the resolver can't detect on its
// own: a package whose installation would collide with something already
// there, and a dependency pattern nothing in the impact or local set
// actually satisfies. The matching shape (build a provides/best-provider
// map, then test requirements against it) mirrors the teacher's RPM/Deb
// dependency resolvers.
package conflict

import (
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/pkgin-go/pkgin/internal/pkgname"
)

// HasConflicts reports whether installing or upgrading node would collide
// with a locally installed package matching one of its declared CONFLICTS
// patterns.
func HasConflicts(node pkglist.ImpactEntry, local []pkglist.ListEntry) bool {
	if node.Computed != pkglist.ToInstall && node.Computed != pkglist.ToUpgrade {
		return false // removals and no-ops never introduce a new collision
	}
	for _, pattern := range node.Conflicts {
		if _, ok := pkglist.MapPkgToDep(local, pattern); ok {
			return true
		}
	}
	return false
}

// MetRequirements returns the subset of impact whose Depend pattern is not
// satisfied by either the impact set itself or the locally installed set,
// i.e. the packages impact would leave with an unmet requirement.
func MetRequirements(impact []pkglist.ImpactEntry, local []pkglist.ListEntry) []pkglist.ImpactEntry {
	provides := buildProvides(impact, local)

	var unmet []pkglist.ImpactEntry
	for _, node := range impact {
		if node.Depend == "" {
			continue // root of the request, not a dependency requirement
		}
		if !isSatisfied(node.Depend, provides) {
			unmet = append(unmet, node)
		}
	}
	return unmet
}

// provided is the set of full names available after impact is applied:
// every impact entry not being removed, plus every locally installed
// package not superseded by an impact entry.
func buildProvides(impact []pkglist.ImpactEntry, local []pkglist.ListEntry) []string {
	touched := make(map[string]struct{}, len(impact))
	var provides []string

	for _, n := range impact {
		touched[n.Stem] = struct{}{}
		if n.Computed == pkglist.ToRemove {
			continue
		}
		provides = append(provides, n.Full())
	}
	for _, l := range local {
		if _, ok := touched[l.Stem]; ok {
			continue
		}
		provides = append(provides, l.Full())
	}
	return provides
}

func isSatisfied(depend string, provides []string) bool {
	entries := make([]pkglist.ListEntry, 0, len(provides))
	for _, full := range provides {
		e, ok := pkgFromFull(full)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	_, ok := pkglist.MapPkgToDep(entries, depend)
	return ok
}

func pkgFromFull(full string) (pkglist.ListEntry, bool) {
	f, ok := pkgname.ParseFull(full)
	if !ok {
		return pkglist.ListEntry{}, false
	}
	return pkglist.ListEntry{Identity: pkglist.Identity{Stem: f.Stem, Version: f.Version}}, true
}
