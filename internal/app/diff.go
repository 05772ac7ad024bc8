package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/classify"
	"github.com/blackwell-systems/dnflock/internal/lockfile"
	"github.com/blackwell-systems/dnflock/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a.lock> <b.lock>",
	Short: "Compare two lock files",
	Long: `Three-way comparison of the package names in two lock files, per
section: packages only in A, only in B, and in both.

Useful for diffing a snapshot against its .backup, or two points in time.`,
	Example: `  # What changed since the last snapshot?
  dnflock diff packages.lock.backup packages.lock`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	a, err := lockfile.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	b, err := lockfile.ParseFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	changed := false
	for _, section := range []string{lockfile.SectionManual, lockfile.SectionAuto} {
		setA := classify.NewSet(a.PackageNames(section)...)
		setB := classify.NewSet(b.PackageNames(section)...)

		onlyA, onlyB, both := classify.Comm(setA, setB)
		if onlyA.Len() > 0 || onlyB.Len() > 0 {
			changed = true
		}

		fmt.Print(output.RenderDiffTable(section, onlyA.Names(), onlyB.Names(), both.Names()))
	}

	if !changed {
		fmt.Println("No package differences.")
	}
	return nil
}
