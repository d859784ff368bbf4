package engine

import (
	"context"
	"fmt"

	"github.com/pkgin-go/pkgin/internal/depgraph"
	"github.com/pkgin-go/pkgin/internal/order"
	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// Remove expands each argument's reverse-dependency closure and runs
// pkg_delete leaves-first, root last.
func (e *Context) Remove(ctx context.Context, args []string) error {
	for _, arg := range args {
		target, ok := pkglist.FindExactPkg(e.Lists.Local, arg)
		if !ok {
			return fmt.Errorf("%w: %q is not installed", ErrFatalInput, arg)
		}

		deptree, err := depgraph.Expand(ctx, e.Store, target.Stem, depgraph.Reverse)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
		}

		for _, n := range order.RemoveOrder(deptree) {
			if err := e.Remover.Remove(ctx, n.Full(), nil); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrExternalStep, n.Full(), err)
			}
			if err := e.Store.DeleteLocalPackage(ctx, n.Stem); err != nil {
				return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
			}
		}
	}
	return e.Reload(ctx)
}

// Autoremove removes every locally installed package that is neither kept
// nor reachable as a dependency of any kept or non-orphaned package.
func (e *Context) Autoremove(ctx context.Context) error {
	roots, err := e.Store.LocalPackages(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
	}

	needed := make(map[string]struct{})
	for _, r := range roots {
		if !r.Keep {
			continue
		}
		nodes, err := depgraph.Expand(ctx, e.Store, r.Stem, depgraph.Forward)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
		}
		for _, n := range nodes {
			needed[n.Stem] = struct{}{}
		}
	}

	var orphans []string
	for _, r := range roots {
		if r.Keep {
			continue
		}
		if _, ok := needed[r.Stem]; !ok {
			orphans = append(orphans, r.Stem)
		}
	}

	if len(orphans) == 0 {
		log.Infow("nothing to autoremove")
		return nil
	}
	return e.Remove(ctx, orphans)
}
