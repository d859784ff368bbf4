package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkgin-go/pkgin/internal/pkglist"
)

// Keep marks stems as protected from Autoremove.
func (e *Context) Keep(ctx context.Context, stems []string) error {
	return e.setKeep(ctx, stems, true)
}

// Unkeep clears the keep flag on stems.
func (e *Context) Unkeep(ctx context.Context, stems []string) error {
	return e.setKeep(ctx, stems, false)
}

func (e *Context) setKeep(ctx context.Context, stems []string, keep bool) error {
	for _, stem := range stems {
		target, ok := pkglist.FindExactPkg(e.Lists.Local, stem)
		if !ok {
			return fmt.Errorf("%w: %q is not installed", ErrFatalInput, stem)
		}
		if err := e.Store.SetKeep(ctx, target.Stem, keep); err != nil {
			return fmt.Errorf("%w: %v", ErrFatalCatalog, err)
		}
	}
	return e.Reload(ctx)
}

// ShowKeep returns the stems currently marked kept.
func (e *Context) ShowKeep(ctx context.Context) ([]string, error) {
	kept, err := e.Store.KeptStems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalCatalog, err)
	}
	return kept, nil
}

// Export writes every kept stem, one per line, to w.
func (e *Context) Export(ctx context.Context, w io.Writer) error {
	kept, err := e.ShowKeep(ctx)
	if err != nil {
		return err
	}
	for _, stem := range kept {
		if _, err := fmt.Fprintln(w, stem); err != nil {
			return err
		}
	}
	return nil
}

// Import marks every stem read from r as kept.
func (e *Context) Import(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var stems []string
	for scanner.Scan() {
		stem := strings.TrimSpace(scanner.Text())
		if stem == "" {
			continue
		}
		stems = append(stems, stem)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return e.Keep(ctx, stems)
}
