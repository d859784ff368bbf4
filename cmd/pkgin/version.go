package main

import (
	"fmt"

	"github.com/pkgin-go/pkgin/internal/config/version"
	"github.com/spf13/cobra"
)

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Toolname, version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  organization: %s\n", version.Organization)
			fmt.Fprintf(cmd.OutOrStdout(), "  build date:   %s\n", version.BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:       %s\n", version.CommitSHA)
			return nil
		},
	}
}
