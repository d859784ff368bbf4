// Package engine ties the package-name, catalog, depgraph, impact,
// conflict, order, cache, fetch, installer, repo, and confirm packages
// together into the operations the CLI commands drive: install, remove,
// upgrade, autoremove, keep/unkeep, export/import, update, and clean. It
// holds the state that pkgin's original C implementation kept in process
// globals (L_LOCAL, L_REMOTE, SQL handles) as an explicit, passed-around
// Context instead, per REDESIGN FLAG #2.
package engine

import (
	"context"
	"fmt"

	"github.com/pkgin-go/pkgin/internal/catalog"
	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/pkgin-go/pkgin/internal/confirm"
	"github.com/pkgin-go/pkgin/internal/fetch"
	"github.com/pkgin-go/pkgin/internal/installer"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/pkgin-go/pkgin/internal/utils/logger"
)

var log = logger.Logger()

// Installer drives pkg_add against a cached archive.
type Installer interface {
	Install(ctx context.Context, archive string, flags []string) error
}

// Remover drives pkg_delete against an installed package.
type Remover interface {
	Remove(ctx context.Context, full string, flags []string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string, def bool) bool
}

// Lists is the in-memory snapshot of the local and remote package sets, the
// explicit replacement for the L_LOCAL/L_REMOTE globals REDESIGN FLAG #2
// calls for.
type Lists struct {
	Local  []pkglist.ListEntry
	Remote []pkglist.ListEntry
}

// Context bundles everything an engine operation needs: the open catalog,
// the loaded package lists, configuration, and the external-interaction
// seams (fetch/install/remove/confirm) so tests can substitute fakes for
// all of them.
type Context struct {
	Store  *catalog.Store
	Lists  Lists
	Config *config.GlobalConfig

	Fetcher   fetch.Fetcher
	Installer Installer
	Remover   Remover
	Confirm   Confirmer
}

// New opens the catalog at cfg.DBPath and loads the local and remote
// package lists into memory.
func New(ctx context.Context, cfg *config.GlobalConfig) (*Context, error) {
	store, err := catalog.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalEnv, err)
	}

	runner := installer.Runner{Verbose: cfg.Logging.Level == "debug"}
	eng := &Context{
		Store:     store,
		Config:    cfg,
		Fetcher:   fetch.NewFetcher(),
		Installer: runner,
		Remover:   runner,
		Confirm:   confirm.Stdin{},
	}

	if err := store.CheckSchema(ctx); err != nil {
		log.Warnw("catalog schema check failed", "error", err)
		if !eng.Confirm.Confirm(ctx, "package database schema is incompatible, reset it?", false) {
			store.Close()
			return nil, fmt.Errorf("%w: %v", ErrFatalCatalog, err)
		}
		if err := store.Reset(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("%w: %v", ErrFatalCatalog, err)
		}
	}

	if err := eng.Reload(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return eng, nil
}

// Reload re-reads the local and remote package lists from the catalog.
func (e *Context) Reload(ctx context.Context) error {
	local, err := e.Store.LocalPackages(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
	}
	remote, err := e.Store.RemotePackages(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
	}
	e.Lists = Lists{Local: local, Remote: remote}
	return nil
}

// Close releases the catalog handle.
func (e *Context) Close() error {
	return e.Store.Close()
}
