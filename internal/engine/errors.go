package engine

import "errors"

// Error kinds classify how an operation failure should be handled by the
// CLI layer: fatal kinds abort immediately with a non-zero exit, recoverable
// and soft kinds are reported and the operation continues or degrades.
var (
	// ErrFatalInput means the arguments given to an operation could not
	// be resolved against the local or remote package lists.
	ErrFatalInput = errors.New("engine: invalid input")
	// ErrFatalEnv means a required environment precondition (catalog
	// open, cache directory writable) failed.
	ErrFatalEnv = errors.New("engine: environment error")
	// ErrFatalCatalog means the local package database could not be
	// read or written.
	ErrFatalCatalog = errors.New("engine: catalog error")
	// ErrRecoverableFetch means one or more downloads failed but the
	// user chose to continue without them.
	ErrRecoverableFetch = errors.New("engine: fetch error")
	// ErrSoftUnmet means the impact set leaves a dependency requirement
	// unsatisfied; the operation can still proceed if the user accepts.
	ErrSoftUnmet = errors.New("engine: unmet requirement")
	// ErrConflict means installing a package would collide with an
	// already-installed one of the same stem.
	ErrConflict = errors.New("engine: package conflict")
	// ErrExternalStep means a pkg_add/pkg_delete subprocess reported a
	// failure.
	ErrExternalStep = errors.New("engine: external command failed")
)
