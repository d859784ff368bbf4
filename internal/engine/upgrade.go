package engine

import (
	"context"
	"fmt"

	"github.com/pkgin-go/pkgin/internal/impact"
	"github.com/pkgin-go/pkgin/internal/order"
	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// Upgrade resolves args (or, if empty, every installed package) against
// the narrowest newer remote candidate and installs/removes in upgrade
// order.
func (e *Context) Upgrade(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, l := range e.Lists.Local {
			args = append(args, l.Stem)
		}
	}

	var impactSet []pkglist.ImpactEntry
	for _, arg := range args {
		installed, ok := pkglist.UniquePkg(e.Lists.Local, arg)
		if !ok {
			continue // not installed, nothing to upgrade
		}

		candidates := sameStem(e.Lists.Remote, installed.Stem)
		best, ok := impact.NarrowMatch(installed.Full(), candidates)
		if !ok {
			continue // already at (or past) the newest available version
		}

		impactSet = append(impactSet, pkglist.ImpactEntry{
			Identity:   best.Identity,
			FileSize:   best.FileSize,
			SizePkg:    best.SizePkg,
			OldSizePkg: installed.SizePkg,
			Old:        installed.Full(),
			Keep:       installed.Keep,
			Conflicts:  best.Conflicts,
			Computed:   pkglist.ToUpgrade,
		})
	}

	if len(impactSet) == 0 {
		log.Infow("everything up to date")
		return nil
	}

	if err := e.fetchImpact(ctx, impactSet); err != nil {
		return err
	}

	for _, n := range order.UpgradeRemoveOrder(impactSet) {
		if n.Computed != pkglist.ToUpgrade {
			continue
		}
		if n.Old != "" { // new side of the pair carries Old; old side doesn't
			if n.FileSize == -1 {
				log.Warnw("skipping package whose download was not tolerated", "pkg", n.Full())
				continue
			}
			archive := n.Full() + ".tgz"
			if err := e.Installer.Install(ctx, archive, nil); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrExternalStep, n.Full(), err)
			}
			if err := e.Store.UpsertLocalPackage(ctx, pkglist.ListEntry{
				Identity: n.Identity, SizePkg: n.SizePkg, Keep: n.Keep, Conflicts: n.Conflicts,
			}); err != nil {
				return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
			}
			continue
		}
		if err := e.Remover.Remove(ctx, n.Full(), nil); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrExternalStep, n.Full(), err)
		}
	}

	return e.Reload(ctx)
}

// FullUpgrade is Upgrade over every installed package.
func (e *Context) FullUpgrade(ctx context.Context) error {
	return e.Upgrade(ctx, nil)
}

func sameStem(list []pkglist.ListEntry, stem string) []pkglist.ListEntry {
	var out []pkglist.ListEntry
	for _, e := range list {
		if e.Stem == stem {
			out = append(out, e)
		}
	}
	return out
}
