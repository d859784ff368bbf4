package main

import (
	"context"

	"github.com/pkgin-go/pkgin/internal/confirm"
	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/pkgin-go/pkgin/internal/engine"
	"github.com/spf13/cobra"
)

// newEngine opens an engine.Context against the global configuration and
// honors the -y/-n persistent flags, and returns a context cancelled on
// SIGINT/SIGTERM along with its cancel func so callers can defer it.
func newEngine(cmd *cobra.Command) (*engine.Context, context.Context, context.CancelFunc, error) {
	ctx, cancel := signalContext()

	eng, err := engine.New(ctx, config.Global())
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	assumeYes, _ := cmd.Flags().GetBool("yes")
	assumeNo, _ := cmd.Flags().GetBool("no")
	if assumeYes || assumeNo {
		eng.Confirm = confirm.Stdin{AssumeYes: assumeYes, AssumeNo: assumeNo}
	}

	if cacheDir, _ := cmd.Flags().GetString("cache-dir"); cacheDir != "" {
		eng.Config.CacheDir = cacheDir
	}

	return eng, ctx, cancel, nil
}
