package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/lockfile"
	"github.com/blackwell-systems/dnflock/internal/output"
	"github.com/blackwell-systems/dnflock/internal/watcher"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the package environment's state",
	Long: `Report which environment artifacts exist (baseline, list files, lock
file, backup), their ages, the last recorded runs, and whether the watch
daemon is running.`,
	RunE: runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, _, err := resolveDir()
	if err != nil {
		return err
	}

	fmt.Printf("Package directory: %s\n\n", dir)

	artifacts := []struct {
		label string
		path  string
	}{
		{"default baseline", dir.DefaultList()},
		{"manual list", dir.ManualList()},
		{"auto-dependency list", dir.AutoList()},
		{"lock file", dir.LockPath()},
		{"lock backup", dir.LockPath() + lockfile.BackupSuffix},
	}

	for _, a := range artifacts {
		info, err := os.Stat(a.path)
		if err != nil {
			fmt.Printf("  %-22s missing\n", a.label)
			continue
		}
		fmt.Printf("  %-22s %s (%s)\n", a.label, a.path, output.FormatRelativeTime(info.ModTime()))
	}

	if _, err := os.Stat(historyDBPath(dir)); err == nil {
		db, err := openStore(dir)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println()
		for _, command := range []string{"init", "analyze", "lock"} {
			run, err := db.LastRun(command)
			if err != nil {
				return err
			}
			if run == nil {
				fmt.Printf("  last %-8s never\n", command)
				continue
			}
			fmt.Printf("  last %-8s %s\n", command, output.FormatRelativeTime(run.RanAt))
		}
	}

	running, err := watcher.IsDaemonRunning(pidFilePath(dir))
	if err != nil {
		return err
	}
	fmt.Println()
	if running {
		fmt.Println("  watch daemon: running")
	} else {
		fmt.Println("  watch daemon: not running")
	}

	return nil
}
