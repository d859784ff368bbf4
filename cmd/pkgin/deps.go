package main

import (
	"fmt"

	"github.com/pkgin-go/pkgin/internal/depgraph"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/spf13/cobra"
)

func newShowDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show-deps <pkg>",
		Short: "Show a package's direct dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ctx, cancel, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer eng.Close()

			target, ok := resolveArg(eng.Lists.Local, eng.Lists.Remote, args[0])
			if !ok {
				return fmt.Errorf("%q not found in either package list", args[0])
			}

			depends, err := eng.Store.RemoteDepends(ctx, target.Stem)
			if err != nil {
				return err
			}
			if len(depends) == 0 {
				depends, err = eng.Store.LocalDepends(ctx, target.Stem)
				if err != nil {
					return err
				}
			}
			for _, d := range depends {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}

func newShowFullDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show-full-deps <pkg>",
		Short: "Show a package's full forward dependency closure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepgraph(cmd, args[0], depgraph.Forward)
		},
	}
}

func newShowRevDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show-rev-deps <pkg>",
		Short: "Show every package that transitively depends on this one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepgraph(cmd, args[0], depgraph.Reverse)
		},
	}
}

func runDepgraph(cmd *cobra.Command, arg string, dir depgraph.Direction) error {
	eng, ctx, cancel, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer eng.Close()

	target, ok := resolveArg(eng.Lists.Local, eng.Lists.Remote, arg)
	if !ok {
		return fmt.Errorf("%q not found in either package list", arg)
	}

	nodes, err := depgraph.Expand(ctx, eng.Store, target.Stem, dir)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, n := range nodes {
		fmt.Fprintf(w, "%d %s\n", n.Level, n.Full())
	}
	return nil
}

func resolveArg(local, remote []pkglist.ListEntry, arg string) (pkglist.ListEntry, bool) {
	if e, ok := pkglist.FindExactPkg(local, arg); ok {
		return e, true
	}
	return pkglist.FindExactPkg(remote, arg)
}
