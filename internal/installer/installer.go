// Package installer drives pkg_add/pkg_delete as subprocesses and
// classifies their stderr output. Each invocation's stderr is captured into
// an in-memory buffer (internal/utils/shell.Run) and scanned directly,
// rather than dup2'd to a log file and tailed afterward.
package installer

import (
	"context"
	"strings"

	"github.com/pkgin-go/pkgin/internal/utils/logger"
	"github.com/pkgin-go/pkgin/internal/utils/shell"
)

var log = logger.Logger()

// Runner is the default Installer/Remover: it shells out to pkg_add and
// pkg_delete.
type Runner struct {
	Verbose bool
}

// Install runs pkg_add against a cached archive path.
func (r Runner) Install(ctx context.Context, archive string, flags []string) error {
	args := append(append([]string{}, flags...), archive)
	return r.run(ctx, "pkg_add", args)
}

// Remove runs pkg_delete against an installed package's full name.
func (r Runner) Remove(ctx context.Context, full string, flags []string) error {
	args := append(append([]string{}, flags...), full)
	return r.run(ctx, "pkg_delete", args)
}

func (r Runner) run(ctx context.Context, bin string, args []string) error {
	res, err := shell.Run(ctx, bin, args, false, nil)
	if res != nil {
		if r.Verbose && len(res.Stdout) > 0 {
			log.Infof("%s: %s", bin, strings.TrimSpace(string(res.Stdout)))
		}
		warnings, errCount := ClassifyOutput(res.Stderr)
		if warnings > 0 {
			log.Warnw("subprocess reported warnings", "bin", bin, "count", warnings)
		}
		if errCount > 0 {
			log.Errorw("subprocess reported errors", "bin", bin, "count", errCount)
		}
	}
	return err
}

// ClassifyOutput scans stderr line by line and counts warnings vs. errors
// using the same substring rules the original pkg_install tools' log
// scraping relied on: a line containing "Warning" is a warning; a line
// containing "already installed" downgrades what would otherwise be an
// error back to a non-issue; "addition failed" or "an't install" (covering
// both "Can't install" and "can't install") count as errors.
func ClassifyOutput(stderr []byte) (warnings, errors int) {
	for _, line := range strings.Split(string(stderr), "\n") {
		switch {
		case line == "":
			continue
		case strings.Contains(line, "already installed"):
			continue
		case strings.Contains(line, "Warning"):
			warnings++
		case strings.Contains(line, "addition failed"), strings.Contains(line, "an't install"):
			errors++
		}
	}
	return warnings, errors
}
