// Package order sequences an impact set into the concrete order packages
// must be installed, upgraded/removed, or removed in. Every ordering here
// is a stable sort over the dependency level depgraph already computed,
// following REDESIGN FLAG #3's vector-plus-sort.SliceStable shape rather
// than walking a level-linked list.
package order

import (
	"sort"

	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// InstallOrder filters impact down to the nodes still slated for
// installation or upgrade with an archive actually on disk (file_size != -1
// excludes a tolerated fetch failure), then sorts so dependencies (deeper
// levels) install before their dependents (shallower levels): descending
// level, stable.
func InstallOrder(impact []pkglist.ImpactEntry) []pkglist.ImpactEntry {
	var out []pkglist.ImpactEntry
	for _, n := range impact {
		if n.Computed != pkglist.ToInstall && n.Computed != pkglist.ToUpgrade {
			continue
		}
		if n.FileSize == -1 {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level > out[j].Level
	})
	return out
}

// UpgradeRemoveOrder sorts impact ascending by level (dependents before
// dependencies, the reverse of install) and, for every TOUPGRADE node,
// emits a synthetic node for the version being replaced immediately before
// it so the old archive is removed before the new one replaces it.
func UpgradeRemoveOrder(impact []pkglist.ImpactEntry) []pkglist.ImpactEntry {
	sorted := append([]pkglist.ImpactEntry(nil), impact...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	out := make([]pkglist.ImpactEntry, 0, len(sorted)*2)
	for _, n := range sorted {
		if n.Computed != pkglist.ToUpgrade || n.Old == "" {
			out = append(out, n)
			continue
		}
		oldVersion := versionOf(n.Old)
		out = append(out, pkglist.ImpactEntry{
			Identity: pkglist.Identity{Stem: n.Stem, Version: oldVersion},
			Level:    n.Level,
			Computed: pkglist.ToUpgrade,
			Keep:     n.Keep,
		})
		out = append(out, n)
	}
	return out
}

// RemoveOrder sorts a remove deptree descending by level (leaves first)
// with the removal root — marked by the sentinel level -1 — appended last.
func RemoveOrder(deptree []pkglist.DepNode) []pkglist.ImpactEntry {
	var root *pkglist.DepNode
	rest := make([]pkglist.DepNode, 0, len(deptree))
	for i, n := range deptree {
		if n.Level == 0 && root == nil {
			root = &deptree[i]
			continue
		}
		rest = append(rest, n)
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Level > rest[j].Level
	})

	out := make([]pkglist.ImpactEntry, 0, len(deptree))
	for _, n := range rest {
		out = append(out, pkglist.ImpactEntry{Identity: n.Identity, Level: n.Level, Computed: pkglist.ToRemove})
	}
	if root != nil {
		out = append(out, pkglist.ImpactEntry{Identity: root.Identity, Level: -1, Computed: pkglist.ToRemove})
	}
	return out
}

func versionOf(full string) string {
	idx := -1
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == '-' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}
	return full[idx+1:]
}
