package main

import (
	"github.com/spf13/cobra"
)

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <pkg>...",
		Aliases: []string{"rm"},
		Short:   "Remove packages and their orphaned dependents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Remove(ctx, args)
		},
	}
}

func newAutoremoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "autoremove",
		Short: "Remove packages that are no longer required by anything kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Autoremove(ctx)
		},
	}
}
