package app

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchStop        bool
	watchRPMDB       string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Watch the rpm database and re-analyze on package changes",
		Long: `Watch the rpm database directory for package transactions and re-run
the classification when the installed set changes, so the list files
track drift from the locked environment.

Runs in the foreground by default; use --daemon to detach.`,
		Example: `  # Watch in the foreground
  dnflock watch

  # Start as a background daemon
  dnflock watch --daemon

  # Stop the daemon
  dnflock watch --stop`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as a background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal: run as the daemon child process")
	watchCmd.Flags().MarkHidden("daemon-child")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop the running daemon")
	watchCmd.Flags().StringVar(&watchRPMDB, "rpmdb", watcher.DefaultRPMDBDir, "rpm database directory to watch")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir, cfg, err := resolveDir()
	if err != nil {
		return err
	}
	if err := dir.Ensure(); err != nil {
		return err
	}

	pidFile := pidFilePath(dir)

	if watchStop {
		if err := watcher.StopDaemon(pidFile); err != nil {
			return err
		}
		fmt.Println("✓ Watch daemon stopped")
		return nil
	}

	if watchDaemon && !watchDaemonChild {
		if err := watcher.StartDaemon(pidFile, logFilePath(dir), "--dir", string(dir), "--rpmdb", watchRPMDB); err != nil {
			return err
		}
		fmt.Printf("✓ Watch daemon started (PID file: %s)\n", pidFile)
		return nil
	}

	q := newQueries(cfg)
	onChange := func() {
		summary, err := runClassification(context.Background(), q, dir, cfg)
		if err != nil {
			log.Printf("watch: re-analysis failed: %v", err)
			return
		}
		log.Printf("watch: package set changed; reclassified %d packages (%d manual, %d auto)",
			summary.Total, summary.Manual, summary.Auto)
	}

	w, err := watcher.New(watchRPMDB, onChange)
	if err != nil {
		return err
	}

	if watchDaemonChild {
		return w.RunDaemon(pidFile)
	}

	fmt.Printf("Watching %s for package changes (Ctrl-C to stop)\n", watchRPMDB)
	return w.RunDaemon(pidFile)
}
