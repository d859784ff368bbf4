package main

import (
	"fmt"

	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/spf13/cobra"
)

func createConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize pkgin configuration",
	}
	cmd.AddCommand(createConfigInitCommand())
	cmd.AddCommand(createConfigShowCommand())
	return cmd
}

func createConfigInitCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeConfigInit(out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "pkgin.yml", "path to write the config file")
	return cmd
}

func executeConfigInit(path string) error {
	cfg := config.DefaultGlobalConfig()
	if err := cfg.SaveGlobalConfigWithComments(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("wrote default configuration to %s\n", path)
	return nil
}

func createConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Global()
			fmt.Fprintf(cmd.OutOrStdout(), "workers: %d\n", cfg.Workers)
			fmt.Fprintf(cmd.OutOrStdout(), "cache_dir: %s\n", cfg.CacheDir)
			fmt.Fprintf(cmd.OutOrStdout(), "db_path: %s\n", cfg.DBPath)
			fmt.Fprintf(cmd.OutOrStdout(), "repos: %v\n", cfg.Repos)
			fmt.Fprintf(cmd.OutOrStdout(), "logging.level: %s\n", cfg.Logging.Level)
			return nil
		},
	}
}
