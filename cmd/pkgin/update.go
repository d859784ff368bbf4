package main

import (
	"github.com/spf13/cobra"
)

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Refresh the local catalog from the configured repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Update(ctx)
		},
	}
}
