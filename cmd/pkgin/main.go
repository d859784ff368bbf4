// Command pkgin manages binary packages built from pkgsrc: it resolves and
// installs packages along with their dependencies, keeps track of what's
// installed, and upgrades or removes them while keeping the dependency
// graph consistent.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkgin-go/pkgin/internal/config"
	"github.com/pkgin-go/pkgin/internal/utils/logger"
	"github.com/pkgin-go/pkgin/internal/utils/security"
	"github.com/spf13/cobra"
)

var cfgFile string
var logLevel string

func main() {
	root := createRootCommand()
	security.AttachRecursive(root, security.DefaultLimits())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pkgin",
		Short: "Binary package manager for pkgsrc",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				logger.SetLogLevel(logLevel)
			}
			log := logger.Logger()
			log.Debugw("starting", "command", cmd.Name(), "config", cfgFile)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override configured log level")
	root.PersistentFlags().BoolP("yes", "y", false, "assume yes to all prompts")
	root.PersistentFlags().BoolP("no", "n", false, "assume no to all prompts")
	root.PersistentFlags().BoolP("force", "f", false, "force the requested action")
	root.PersistentFlags().BoolP("full", "F", false, "operate on full dependency set")
	root.PersistentFlags().CountP("verbose", "v", "increase output verbosity")
	root.PersistentFlags().BoolP("version-check", "V", false, "show available version info")
	root.PersistentFlags().BoolP("download-only", "d", false, "fetch without installing")
	root.PersistentFlags().StringP("cache-dir", "c", "", "override the configured cache directory")
	root.PersistentFlags().StringP("limit", "l", "", "limit to a single repository")
	root.PersistentFlags().IntP("parse-only", "t", 0, "parse repository metadata without acting")

	cobra.OnInitialize(func() { initConfig(root) })

	root.AddCommand(
		newInstallCommand(),
		newRemoveCommand(),
		newUpgradeCommand(),
		newFullUpgradeCommand(),
		newAutoremoveCommand(),
		newSearchCommand(),
		newListCommand(),
		newAvailCommand(),
		newShowDepsCommand(),
		newShowFullDepsCommand(),
		newShowRevDepsCommand(),
		newKeepCommand(),
		newUnkeepCommand(),
		newShowKeepCommand(),
		newExportCommand(),
		newImportCommand(),
		newUpdateCommand(),
		createCacheCommand(),
		createVersionCommand(),
		createConfigCommand(),
		createInstallCompletionCommand(),
	)

	return root
}

// initConfig resolves and loads the global configuration, honoring
// --config, then the usual search paths, then built-in defaults.
func initConfig(root *cobra.Command) {
	path := cfgFile
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		cfg = config.DefaultGlobalConfig()
	}
	config.SetGlobal(cfg)

	if _, _, err := logger.InitWithConfig(logger.Config{Level: cfg.Logging.Level, FilePath: cfg.Logging.File}); err != nil {
		fmt.Fprintf(os.Stderr, "pkgin: logger init failed: %v\n", err)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM, threaded
// through every catalog, fetch, and subprocess call so an interrupt mid
// download or mid pkg_add stops cleanly instead of leaving the cache or
// the local database half written.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
