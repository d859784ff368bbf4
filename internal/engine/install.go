package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkgin-go/pkgin/internal/cache"
	"github.com/pkgin-go/pkgin/internal/conflict"
	"github.com/pkgin-go/pkgin/internal/fetch"
	"github.com/pkgin-go/pkgin/internal/impact"
	"github.com/pkgin-go/pkgin/internal/order"
	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// Install resolves args against the remote package list, fetches whatever
// the impact set needs, and runs pkg_add over the result in dependency
// order.
func (e *Context) Install(ctx context.Context, args []string) error {
	impactSet, err := impact.Build(ctx, e.Store, args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalInput, err)
	}
	if len(impactSet) == 0 {
		log.Infow("nothing to do")
		return nil
	}

	for _, n := range impactSet {
		if conflict.HasConflicts(n, e.Lists.Local) {
			return fmt.Errorf("%w: %s", ErrConflict, n.Full())
		}
	}

	if unmet := conflict.MetRequirements(impactSet, e.Lists.Local); len(unmet) > 0 {
		if !e.Confirm.Confirm(ctx, fmt.Sprintf("%d unmet requirement(s), continue anyway?", len(unmet)), false) {
			return fmt.Errorf("%w: %d unmet", ErrSoftUnmet, len(unmet))
		}
	}

	if err := e.fetchImpact(ctx, impactSet); err != nil {
		return err
	}

	for _, n := range order.InstallOrder(impactSet) {
		archive := filepath.Join(e.cacheDir(), n.Full()+".tgz")
		if err := e.Installer.Install(ctx, archive, nil); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrExternalStep, n.Full(), err)
		}
		if n.Computed == pkglist.ToUpgrade && n.Old != "" {
			if err := e.Remover.Remove(ctx, n.Old, nil); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrExternalStep, n.Old, err)
			}
		}
		if err := e.Store.UpsertLocalPackage(ctx, pkglist.ListEntry{
			Identity: n.Identity, SizePkg: n.SizePkg, Keep: n.Keep, Conflicts: n.Conflicts,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
		}
	}

	return e.Reload(ctx)
}

// fetchImpact plans and downloads the archives an impact set needs,
// dispatching file:// repositories to a symlink instead of a network
// fetch.
func (e *Context) fetchImpact(ctx context.Context, impactSet []pkglist.ImpactEntry) error {
	cacheDir := e.cacheDir()
	toFetch, err := cache.Plan(impactSet, cacheDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalEnv, err)
	}
	if len(toFetch) == 0 {
		return nil
	}

	var needsNetwork []pkglist.ImpactEntry
	for _, n := range toFetch {
		url := e.repoURLFor(n)
		if cache.IsFileScheme(url) {
			if err := cache.LinkFileScheme(url, cacheDir, n); err != nil {
				return fmt.Errorf("%w: %v", ErrRecoverableFetch, err)
			}
			continue
		}
		needsNetwork = append(needsNetwork, n)
	}
	if len(needsNetwork) == 0 {
		return nil
	}

	pool := &fetch.Pool{
		Fetcher:  e.Fetcher,
		Confirm:  e.Confirm,
		Workers:  e.workers(),
		CacheDir: cacheDir,
		RepoURL:  e.repoURLFor,
	}
	results, err := pool.Run(ctx, needsNetwork)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecoverableFetch, err)
	}

	byStem := make(map[string]pkglist.ImpactEntry, len(results))
	for _, r := range results {
		byStem[r.Stem] = r
	}
	for i := range impactSet {
		if r, ok := byStem[impactSet[i].Stem]; ok {
			impactSet[i].FileSize = r.FileSize
		}
	}
	return nil
}

// repoURLFor guesses the archive URL for n from the first configured
// repository; a real deployment would look this up per-package from the
// remote_pkg table's repo_url column, already tracked by the catalog.
func (e *Context) repoURLFor(n pkglist.ImpactEntry) string {
	if len(e.Config.Repos) == 0 {
		return ""
	}
	return e.Config.Repos[0] + "/" + n.Full() + ".tgz"
}

func (e *Context) cacheDir() string {
	if e.Config.CacheDir == "" {
		return "./cache"
	}
	return e.Config.CacheDir
}

func (e *Context) workers() int {
	if e.Config.Workers <= 0 {
		return 8
	}
	return e.Config.Workers
}
