package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keep <pkg>...",
		Short: "Mark packages as protected from autoremove",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Keep(ctx, args)
		},
	}
}

func newUnkeepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unkeep <pkg>...",
		Short: "Clear the keep flag on packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			return eng.Unkeep(ctx, args)
		},
	}
}

func newShowKeepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show-keep",
		Short: "List packages marked as kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			kept, err := eng.ShowKeep(ctx)
			if err != nil {
				return err
			}
			for _, stem := range kept {
				fmt.Fprintln(cmd.OutOrStdout(), stem)
			}
			return nil
		},
	}
}
