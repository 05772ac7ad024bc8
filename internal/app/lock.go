package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dnflock/internal/classify"
	"github.com/blackwell-systems/dnflock/internal/dnf"
	"github.com/blackwell-systems/dnflock/internal/lockfile"
	"github.com/blackwell-systems/dnflock/internal/output"
	"github.com/blackwell-systems/dnflock/internal/pkgdir"
	"github.com/blackwell-systems/dnflock/internal/store"
)

// lockBatchSize bounds each repoquery invocation's argument list.
const lockBatchSize = 25

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Write a checksummed lock file for the classified environment",
	Long: `Build full package records (version, release, arch, size, install time,
repository) for the manual and auto-dependency sets, capture repository
states, and write packages.lock with per-section SHA-256 checksums.

The previous lock file, if any, is preserved as packages.lock.backup.
Requires list files from 'dnflock analyze'.`,
	Example: `  # Snapshot the current environment
  dnflock lock`,
	RunE: runLock,
}

func init() {
	RootCmd.AddCommand(lockCmd)
}

func runLock(cmd *cobra.Command, args []string) error {
	dir, cfg, err := resolveDir()
	if err != nil {
		return err
	}

	manual, err := pkgdir.ReadList(dir.ManualList())
	if err != nil {
		return fmt.Errorf("no manual-package list (run 'dnflock analyze' first): %w", err)
	}
	auto, err := pkgdir.ReadList(dir.AutoList())
	if err != nil {
		return fmt.Errorf("no auto-dependency list (run 'dnflock analyze' first): %w", err)
	}

	q := newQueries(cfg)
	ctx := cmd.Context()

	system, err := q.SystemIdentity(ctx)
	if err != nil {
		return err
	}

	f := &lockfile.File{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		System:      system,
	}

	total := manual.Len() + auto.Len()
	bar := output.NewProgress(total, "Collecting package records...")

	if err := appendRecords(ctx, q, f, lockfile.SectionManual, manual, bar); err != nil {
		return err
	}
	if err := appendRecords(ctx, q, f, lockfile.SectionAuto, auto, bar); err != nil {
		return err
	}
	bar.Finish()

	repos, err := q.Repositories(ctx)
	if err != nil {
		return err
	}
	for _, repo := range repos {
		f.AddRepository(repo)
	}

	lockfile.FinalizeChecksums(f)

	lockPath := dir.LockPath()
	if err := lockfile.Write(lockPath, f); err != nil {
		return err
	}

	digest, err := lockfile.ChecksumFile(lockPath)
	if err != nil {
		return err
	}

	db, err := openStore(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.InsertRun(&store.Run{
		RanAt:          time.Now(),
		Command:        "lock",
		TotalPackages:  total,
		ManualPackages: manual.Len(),
		AutoDeps:       auto.Len(),
		LockPath:       lockPath,
		LockChecksum:   digest,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %s (%d manual, %d auto-dependency packages)\n", lockPath, manual.Len(), auto.Len())
	fmt.Printf("  sha256: %s\n", digest)
	return nil
}

// appendRecords queries package records in fixed-size batches and
// appends them to the given section, advancing the progress bar per
// batch.
func appendRecords(ctx context.Context, q dnf.Queries, f *lockfile.File, section string, set classify.Set, bar *output.ProgressBar) error {
	chunks, err := classify.Chunk(set.Names(), lockBatchSize)
	if err != nil {
		return err
	}

	for _, chunk := range chunks {
		records, err := q.Records(ctx, chunk)
		if err != nil {
			return err
		}
		for _, rec := range records {
			f.AddRecord(section, rec)
		}
		bar.IncrementBy(len(chunk))
	}
	return nil
}
