package main

import (
	"fmt"

	"github.com/pkgin-go/pkgin/internal/cache"
	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/pkgin-go/pkgin/internal/utils/convert"
	"github.com/spf13/cobra"
)

func createCacheCommand() *cobra.Command {
	var maxSize string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Empty the package archive cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _ := cmd.Flags().GetString("repo")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if maxSize != "" {
				limit, err := convert.NormalizeSizeToBytes(maxSize)
				if err != nil {
					return fmt.Errorf("parsing --max-size: %w", err)
				}
				cacheDir, err := config.CacheDir()
				if err != nil {
					return err
				}
				used, err := cache.DirSize(cacheDir)
				if err != nil {
					return fmt.Errorf("measuring cache size: %w", err)
				}
				if used <= int64(limit) {
					fmt.Fprintf(cmd.OutOrStdout(), "cache at %d bytes, under --max-size %s, nothing to do\n", used, maxSize)
					return nil
				}
			}

			result, err := cache.Clean(cache.CleanOptions{RepoFilter: repo, DryRun: dryRun})
			if err != nil {
				return err
			}
			for _, path := range result.RemovedPaths {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().String("repo", "", "only clean the named repository's cache subdirectory")
	cmd.Flags().Bool("dry-run", false, "report what would be removed without deleting anything")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "only clean if the cache exceeds this size (e.g. 500MiB)")
	return cmd
}
