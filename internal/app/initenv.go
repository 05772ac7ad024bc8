package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/pkgdir"
	"github.com/blackwell-systems/dnflock/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the package environment",
	Long: `Create the package directory, query the distribution-default package
set, and record it as the classification baseline in default-packages.txt.

Run this once before 'dnflock analyze'. Re-running refreshes the baseline.`,
	Example: `  # Initialize with the default directory (~/fedora-packages)
  dnflock init

  # Initialize a specific directory
  dnflock init --dir /srv/packages`,
	RunE: runInit,
}

func init() {
	RootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, cfg, err := resolveDir()
	if err != nil {
		return err
	}
	if err := dir.Ensure(); err != nil {
		return err
	}

	q := newQueries(cfg)

	fmt.Printf("Initializing package environment in %s\n", dir)

	defaults, err := q.Defaults(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query default packages: %w", err)
	}
	defaults = applyExcludes(defaults, cfg)

	if err := pkgdir.WriteList(dir.DefaultList(), defaults); err != nil {
		return err
	}

	db, err := openStore(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.InsertRun(&store.Run{
		RanAt:           time.Now(),
		Command:         "init",
		DefaultPackages: defaults.Len(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recorded %d default packages in %s\n", defaults.Len(), dir.DefaultList())
	fmt.Println("Next: run 'dnflock analyze' to classify installed packages.")
	return nil
}
