package app

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/classify"
	"github.com/blackwell-systems/dnflock/internal/lockfile"
	"github.com/blackwell-systems/dnflock/internal/output"
	"github.com/blackwell-systems/dnflock/internal/pkgdir"
)

var (
	statsRuns     int
	statsPackages bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show classification statistics and category breakdown",
	Long: `Display the current classification shares, the category breakdown of
manually installed packages (development, python, containers, editors,
media, or custom categories from the config file), total recorded sizes
from the lock file, and recent run history.`,
	Example: `  # Show statistics for the current environment
  dnflock stats

  # Include the last 20 runs
  dnflock stats --runs 20

  # List the locked manual packages with sizes
  dnflock stats --packages`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsRuns, "runs", 10, "number of history entries to show")
	statsCmd.Flags().BoolVar(&statsPackages, "packages", false, "list locked manual packages with sizes")
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsRuns <= 0 {
		return fmt.Errorf("invalid runs: %d (must be positive)", statsRuns)
	}

	dir, cfg, err := resolveDir()
	if err != nil {
		return err
	}

	manual, err := pkgdir.ReadList(dir.ManualList())
	if err != nil {
		return fmt.Errorf("no classification yet (run 'dnflock analyze' first): %w", err)
	}

	// Category breakdown over the manual set.
	categories := classify.Categorize(manual.Names())
	if cfg != nil && len(cfg.Categories) > 0 {
		compiled, err := classify.CompileCategories(cfg.Categories)
		if err != nil {
			return fmt.Errorf("invalid category pattern in config: %w", err)
		}
		categories = classify.CategorizeWith(manual.Names(), compiled)
	}

	fmt.Printf("Manually installed packages: %d\n\n", manual.Len())
	fmt.Print(output.RenderCategoryTable(categories))

	// Sizes come from the lock file when one exists.
	if f, err := lockfile.ParseFile(dir.LockPath()); err == nil {
		var totalSize int64
		for _, section := range []string{lockfile.SectionManual, lockfile.SectionAuto} {
			records, err := f.Records(section)
			if err != nil {
				continue // tolerate malformed rows in stats output
			}
			for _, rec := range records {
				totalSize += rec.SizeBytes
			}
		}
		fmt.Printf("\nTotal recorded size: %s\n", humanize.Bytes(uint64(totalSize)))

		if statsPackages {
			records, err := f.Records(lockfile.SectionManual)
			if err != nil {
				return fmt.Errorf("malformed records in %s: %w", dir.LockPath(), err)
			}
			fmt.Println()
			fmt.Print(output.RenderRecordTable(records))
		}
	}

	db, err := openStore(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(statsRuns)
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		fmt.Println("\nRecent runs:")
		for _, run := range runs {
			pct := classify.Percent(run.ManualPackages, max(run.TotalPackages, 1))
			fmt.Printf("  %-8s %s  total=%d manual=%d (%d%%) auto=%d\n",
				run.Command,
				output.FormatRelativeTime(run.RanAt),
				run.TotalPackages, run.ManualPackages, pct, run.AutoDeps)
		}
	}

	return nil
}
