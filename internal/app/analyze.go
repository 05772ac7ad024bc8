package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/output"
)

var analyzeQuiet bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify installed packages into manual and auto-dependency sets",
	Long: `Query the package manager for the full installed set and the
user-requested set, subtract the recorded default baseline, and write
manual-packages.txt and auto-dependencies.txt.

Classification:
  manual = user-requested − defaults
  auto   = (installed − defaults) − manual

A package that is both explicitly requested and pulled in as a dependency
counts as manual. Requires a baseline from 'dnflock init'.`,
	Example: `  # Classify and show the breakdown
  dnflock analyze

  # Classify quietly (suppress the summary table)
  dnflock analyze --quiet`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeQuiet, "quiet", false, "suppress output")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir, cfg, err := resolveDir()
	if err != nil {
		return err
	}
	if err := dir.Ensure(); err != nil {
		return err
	}

	q := newQueries(cfg)

	var spinner *output.Spinner
	isTTY := isatty.IsTerminal(os.Stdout.Fd())
	if !analyzeQuiet && isTTY {
		spinner = output.NewSpinner("Querying installed packages...")
		spinner.Start()
	}

	summary, err := runClassification(cmd.Context(), q, dir, cfg)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if !analyzeQuiet {
		fmt.Print(output.RenderClassificationSummary(summary))
		fmt.Printf("\nLists written to %s\n", dir)
	}
	return nil
}
