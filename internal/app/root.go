package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/config"
	"github.com/blackwell-systems/dnflock/internal/pkgdir"
)

var (
	dirFlag string

	// RootCmd is the root command for dnflock
	RootCmd = &cobra.Command{
		Use:   "dnflock",
		Short: "Fedora package environment snapshots with checksummed lock files",
		Long: `dnflock classifies the installed Fedora package set into distribution
defaults, manually installed packages, and auto-installed dependencies,
and captures the result in a checksummed lock file for later audit.

Workflow:
  1. dnflock init      # record the distribution-default baseline
  2. dnflock analyze   # classify installed packages
  3. dnflock lock      # write the checksummed lock file
  4. dnflock verify    # detect tampering or corruption later

Examples:
  # Record the default-package baseline
  dnflock init

  # Classify installed packages and write the list files
  dnflock analyze

  # Snapshot the environment into packages.lock
  dnflock lock

  # Check a lock file's integrity
  dnflock verify

  # Compare two snapshots
  dnflock diff old.lock new.lock

  # Re-analyze automatically when packages change
  dnflock watch --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _, err := resolveDir()
			if err != nil {
				return err
			}

			fmt.Println("dnflock: Fedora package environment snapshots")
			fmt.Println()
			if _, err := os.Stat(dir.DefaultList()); os.IsNotExist(err) {
				fmt.Println("Run 'dnflock init' to get started.")
				fmt.Println("Run 'dnflock --help' for the full reference.")
			} else {
				fmt.Println("Tip: Run 'dnflock status' to check the environment.")
				fmt.Println("     Run 'dnflock analyze' to refresh the classification.")
				fmt.Println("     Run 'dnflock --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "package directory (default: ~/fedora-packages, or $DNFLOCK_DIR)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// resolveDir loads the config file and resolves the package directory
// from flag, environment, config, or the home fallback.
func resolveDir() (pkgdir.Dir, *config.Config, error) {
	cfgDir, err := config.Dir()
	if err != nil {
		return "", nil, fmt.Errorf("failed to locate config directory: %w", err)
	}

	cfg, err := config.Load(cfgDir)
	if err != nil {
		return "", nil, err
	}

	dir, err := config.ResolvePackageDir(dirFlag, cfg)
	if err != nil {
		return "", nil, err
	}
	return pkgdir.Dir(dir), cfg, nil
}

// historyDBPath returns the run-history database path inside the
// package directory.
func historyDBPath(dir pkgdir.Dir) string {
	return filepath.Join(string(dir), "dnflock.db")
}

// pidFilePath returns the watch daemon's PID file path.
func pidFilePath(dir pkgdir.Dir) string {
	return filepath.Join(string(dir), "watch.pid")
}

// logFilePath returns the watch daemon's log file path.
func logFilePath(dir pkgdir.Dir) string {
	return filepath.Join(string(dir), "watch.log")
}
