package main

import (
	"fmt"
	"strings"

	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search the remote package list by stem substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			pattern := strings.ToLower(args[0])
			installed := make(map[string]bool, len(eng.Lists.Local))
			for _, l := range eng.Lists.Local {
				installed[l.Stem] = true
			}

			w := cmd.OutOrStdout()
			for _, p := range eng.Lists.Remote {
				if !strings.Contains(strings.ToLower(p.Stem), pattern) {
					continue
				}
				marker := " "
				if installed[p.Stem] {
					marker = "="
				}
				fmt.Fprintf(w, "%s %s %s\n", marker, p.Full(), p.Comment)
			}
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			printPkgList(cmd, eng.Lists.Local)
			return nil
		},
	}
}

func newAvailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "avail",
		Short: "List packages available from the configured repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			printPkgList(cmd, eng.Lists.Remote)
			return nil
		},
	}
}

func printPkgList(cmd *cobra.Command, list []pkglist.ListEntry) {
	w := cmd.OutOrStdout()
	for _, p := range list {
		fmt.Fprintf(w, "%s %s\n", p.Full(), p.Comment)
	}
}
