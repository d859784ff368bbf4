package main

import (
	"github.com/spf13/cobra"
)

func newInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install <pkg>...",
		Short: "Install packages and their dependencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Install(ctx, args)
		},
	}
}
