// Package impact turns a user's requested package arguments into an impact
// set: the full list of packages that must be installed, upgraded, or
// removed to satisfy the request, each annotated with the action computed
// for it. It is the first stage that reasons about what changes, as opposed
// to depgraph's purely structural dependency walk.
package impact

import (
	"context"
	"fmt"

	"github.com/pkgin-go/pkgin/internal/catalog"
	"github.com/pkgin-go/pkgin/internal/depgraph"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/pkgin-go/pkgin/internal/pkgname"
)

// Build resolves args (package stems, full names, or dependency patterns)
// against remote, expands their forward dependency closure, and classifies
// every resulting node against the locally installed set.
func Build(ctx context.Context, store *catalog.Store, args []string) ([]pkglist.ImpactEntry, error) {
	local, err := store.LocalPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("impact: load local packages: %w", err)
	}
	remote, err := store.RemotePackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("impact: load remote packages: %w", err)
	}

	var result []pkglist.ImpactEntry
	seen := make(map[string]struct{})

	for _, arg := range args {
		target, ok := resolveArg(remote, arg)
		if !ok {
			return nil, fmt.Errorf("impact: no candidate for %q", arg)
		}
		if _, dup := seen[target.Stem]; dup {
			continue
		}

		nodes, err := depgraph.Expand(ctx, store, target.Stem, depgraph.Forward)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			if _, dup := seen[n.Stem]; dup {
				continue
			}
			seen[n.Stem] = struct{}{}
			result = append(result, classify(n, local, remote))
		}
	}
	return result, nil
}

// resolveArg interprets a CLI argument as an exact full name, a bare stem,
// or a dependency pattern, returning the remote candidate it selects.
func resolveArg(remote []pkglist.ListEntry, arg string) (pkglist.ListEntry, bool) {
	if e, ok := pkglist.FindExactPkg(remote, arg); ok {
		return e, true
	}
	return pkglist.MapPkgToDep(remote, arg)
}

// classify compares a dependency-graph node against the locally installed
// set and the best remote candidate to decide its Action.
func classify(n pkglist.DepNode, local, remote []pkglist.ListEntry) pkglist.ImpactEntry {
	entry := pkglist.ImpactEntry{
		Identity:   n.Identity,
		Depend:     n.Depend,
		Level:      n.Level,
		OldSizePkg: -1,
		Computed:   pkglist.ToInstall,
	}

	if remoteEntry, ok := pkglist.UniquePkg(remote, n.Stem); ok {
		entry.FileSize = remoteEntry.FileSize
		entry.SizePkg = remoteEntry.SizePkg
		entry.Conflicts = remoteEntry.Conflicts
	}

	installed, isLocal := pkglist.UniquePkg(local, n.Stem)
	if !isLocal {
		return entry
	}

	entry.Keep = installed.Keep
	entry.OldSizePkg = installed.SizePkg

	if installed.Version == entry.Version {
		entry.Computed = pkglist.DoNothing
		return entry
	}

	switch pkgname.VersionCheck(entry.Full(), installed.Full()) {
	case 1:
		entry.Old = installed.Full()
		entry.Computed = pkglist.ToUpgrade
	default:
		entry.Computed = pkglist.DoNothing
	}
	return entry
}

// NarrowMatch picks, among candidates sharing installed's stem, the one
// whose full name shares the longest byte-wise common prefix with
// installed's full name. Ties keep the first candidate encountered. If
// installed's version is already >= every candidate's, NarrowMatch reports
// no match: there is nothing narrower to upgrade to.
func NarrowMatch(installed string, candidates []pkglist.ListEntry) (pkglist.ListEntry, bool) {
	var best pkglist.ListEntry
	bestPrefix := -1
	found := false

	for _, c := range candidates {
		if pkgname.VersionCheck(c.Full(), installed) != 1 {
			continue // candidate is not newer than installed
		}
		prefix := commonPrefixLen(installed, c.Full())
		if prefix > bestPrefix {
			bestPrefix = prefix
			best = c
			found = true
		}
	}
	return best, found
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
