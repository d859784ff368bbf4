// Package confirm implements the yes/no prompt every destructive or
// uncertain operation (schema reset, tolerate a failed download, proceed
// despite an unmet requirement) goes through before acting.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Interface asks prompt and reports the user's yes/no answer, falling back
// to def when the input can't be read or is empty.
type Interface interface {
	Confirm(ctx context.Context, prompt string, def bool) bool
}

// Stdin prompts on an io.Writer and reads the answer from an io.Reader,
// honoring the global -y/-n flags by skipping the prompt entirely.
type Stdin struct {
	In  io.Reader
	Out io.Writer

	// AssumeYes and AssumeNo mirror the global -y/-n flags: when set,
	// Confirm returns that answer without prompting.
	AssumeYes bool
	AssumeNo  bool
}

func (s Stdin) Confirm(ctx context.Context, prompt string, def bool) bool {
	if s.AssumeYes {
		return true
	}
	if s.AssumeNo {
		return false
	}

	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(s.Out, "%s %s ", prompt, suffix)

	scanner := bufio.NewScanner(s.In)
	if !scanner.Scan() {
		return def
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	switch answer {
	case "":
		return def
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}
