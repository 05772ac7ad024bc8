package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/lockfile"
)

var verifyStrict bool

var verifyCmd = &cobra.Command{
	Use:   "verify [lockfile]",
	Short: "Check a lock file's checksums",
	Long: `Parse a lock file, recompute the SHA-256 digest of each checksummed
section, and compare against the stored CHECKSUMS entries. A mismatch
signals tampering or corruption; it is reported, never repaired.

With --strict, every record row must also have exactly seven well-formed
fields. Defaults to the current environment's packages.lock when no path
is given.`,
	Example: `  # Verify the current lock file
  dnflock verify

  # Verify a specific file, including record field counts
  dnflock verify --strict /srv/packages/packages.lock`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "also validate record field counts")
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		dir, _, err := resolveDir()
		if err != nil {
			return err
		}
		path = dir.LockPath()
	}

	f, err := lockfile.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	if err := lockfile.Verify(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if verifyStrict {
		if err := lockfile.ValidateRecords(f); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	manual := len(f.PackageNames(lockfile.SectionManual))
	auto := len(f.PackageNames(lockfile.SectionAuto))
	fmt.Printf("✓ %s verified (%d manual, %d auto-dependency packages)\n", path, manual, auto)
	return nil
}
