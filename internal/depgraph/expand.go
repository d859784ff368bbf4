// Package depgraph expands a package's transitive dependency (or reverse
// dependency) closure into a level-annotated deptree, the input the impact
// and order packages build on. The expansion is a breadth-first walk over
// the catalog's depend/reverse-depend edges, the same queue-plus-seen-set
// shape the teacher's RPM/Deb dependency resolvers use for capability
// resolution.
package depgraph

import (
	"context"
	"fmt"

	"github.com/pkgin-go/pkgin/internal/catalog"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/pkgin-go/pkgin/internal/pkgname"
)

// Direction selects which edge set Expand walks.
type Direction int

const (
	// Forward walks a package's own dependency requirements (what it
	// needs), used for install/upgrade impact computation.
	Forward Direction = iota
	// Reverse walks packages that depend on the given stem (who needs
	// it), used for remove/autoremove impact computation.
	Reverse
)

type queueItem struct {
	stem  string
	level int
	via   string // raw dependency pattern that enqueued this item; "" for the root
}

// Expand performs a breadth-first walk from stem over remote dependency
// edges (Forward) or local reverse-dependency edges (Reverse), returning
// one DepNode per stem reached, annotated with its BFS level (root is
// level 0, its direct edges level 1, and so on). A stem is only ever
// enqueued once; the first level it's reached at is the one recorded.
func Expand(ctx context.Context, store *catalog.Store, stem string, dir Direction) ([]pkglist.DepNode, error) {
	seen := make(map[string]struct{})
	head := make(map[string]*pkglist.DepNode)

	var order []string
	queue := []queueItem{{stem: stem, level: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if _, ok := seen[cur.stem]; ok {
			continue
		}
		seen[cur.stem] = struct{}{}
		order = append(order, cur.stem)

		version, depends, err := lookup(ctx, store, cur.stem, dir)
		if err != nil {
			return nil, fmt.Errorf("depgraph: expand %s: %w", stem, err)
		}

		node := &pkglist.DepNode{
			Identity: pkglist.Identity{Stem: cur.stem, Version: version},
			Depend:   cur.via,
			Level:    cur.level,
		}
		head[cur.stem] = node

		for _, depend := range depends {
			next := depend
			if dir == Forward {
				next = pkgname.StemFromDepend(depend)
			}
			if _, ok := seen[next]; ok {
				continue
			}
			queue = append(queue, queueItem{stem: next, level: cur.level + 1, via: depend})
		}
	}

	result := make([]pkglist.DepNode, 0, len(order))
	for _, s := range order {
		result = append(result, *head[s])
	}
	return result, nil
}

// lookup resolves a stem's installed/available version and the raw
// dependency strings (or, for Reverse, the reverse-dependent stems) to
// enqueue next.
func lookup(ctx context.Context, store *catalog.Store, stem string, dir Direction) (version string, edges []string, err error) {
	if dir == Reverse {
		version, err = localVersion(ctx, store, stem)
		if err != nil {
			return "", nil, err
		}
		edges, err = store.ReverseDepends(ctx, stem)
		return version, edges, err
	}

	version, err = remoteVersion(ctx, store, stem)
	if err != nil {
		return "", nil, err
	}
	edges, err = store.RemoteDepends(ctx, stem)
	return version, edges, err
}

func localVersion(ctx context.Context, store *catalog.Store, stem string) (string, error) {
	list, err := store.LocalPackages(ctx)
	if err != nil {
		return "", err
	}
	if e, ok := pkglist.UniquePkg(list, stem); ok {
		return e.Version, nil
	}
	return "", nil
}

func remoteVersion(ctx context.Context, store *catalog.Store, stem string) (string, error) {
	list, err := store.RemotePackages(ctx)
	if err != nil {
		return "", err
	}
	if e, ok := pkglist.UniquePkg(list, stem); ok {
		return e.Version, nil
	}
	return "", nil
}
