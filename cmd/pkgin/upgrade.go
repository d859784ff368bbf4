package main

import (
	"github.com/spf13/cobra"
)

func newUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade [pkg]...",
		Short: "Upgrade installed packages to the narrowest newer candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Upgrade(ctx, args)
		},
	}
}

func newFullUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "full-upgrade",
		Short: "Upgrade every installed package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.FullUpgrade(ctx)
		},
	}
}
