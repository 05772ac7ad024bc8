package app

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/dnflock/internal/classify"
	"github.com/blackwell-systems/dnflock/internal/config"
	"github.com/blackwell-systems/dnflock/internal/dnf"
	"github.com/blackwell-systems/dnflock/internal/output"
	"github.com/blackwell-systems/dnflock/internal/pkgdir"
	"github.com/blackwell-systems/dnflock/internal/store"
)

// queries is swapped out by tests; production code talks to dnf/rpm.
var queries dnf.Queries

// newQueries returns the package-manager adapter, honoring the config
// file's query timeout.
func newQueries(cfg *config.Config) dnf.Queries {
	if queries != nil {
		return queries
	}
	cli := dnf.NewCLI()
	if cfg != nil && cfg.QueryTimeoutSeconds > 0 {
		cli.Timeout = time.Duration(cfg.QueryTimeoutSeconds) * time.Second
	}
	return cli
}

// openStore opens (and if needed initializes) the run-history database
// inside the package directory.
func openStore(dir pkgdir.Dir) (*store.Store, error) {
	db, err := store.New(historyDBPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applyExcludes removes the config file's excluded names from a set.
func applyExcludes(set classify.Set, cfg *config.Config) classify.Set {
	if cfg == nil || len(cfg.Exclude) == 0 {
		return set
	}
	return set.Diff(classify.NewSet(cfg.Exclude...))
}

// runClassification performs one analyze pass: query the live system,
// classify against the recorded baseline, write the manual and
// auto-dependency list files, and record the run. Returns the rendered
// summary.
func runClassification(ctx context.Context, q dnf.Queries, dir pkgdir.Dir, cfg *config.Config) (output.ClassificationSummary, error) {
	defaults, err := pkgdir.ReadList(dir.DefaultList())
	if err != nil {
		return output.ClassificationSummary{}, fmt.Errorf("no default-package baseline (run 'dnflock init' first): %w", err)
	}

	all, err := q.Installed(ctx)
	if err != nil {
		return output.ClassificationSummary{}, err
	}
	user, err := q.UserInstalled(ctx)
	if err != nil {
		return output.ClassificationSummary{}, err
	}

	all = applyExcludes(all, cfg)
	user = applyExcludes(user, cfg)

	res := classify.Classify(all, defaults, user)

	if err := pkgdir.WriteList(dir.ManualList(), res.Manual); err != nil {
		return output.ClassificationSummary{}, err
	}
	if err := pkgdir.WriteList(dir.AutoList(), res.Auto); err != nil {
		return output.ClassificationSummary{}, err
	}

	summary := output.ClassificationSummary{
		Total:   all.Len(),
		Default: defaults.Intersect(all).Len(),
		Manual:  res.Manual.Len(),
		Auto:    res.Auto.Len(),
	}

	db, err := openStore(dir)
	if err != nil {
		return summary, err
	}
	defer db.Close()

	_, err = db.InsertRun(&store.Run{
		RanAt:           time.Now(),
		Command:         "analyze",
		TotalPackages:   summary.Total,
		DefaultPackages: summary.Default,
		ManualPackages:  summary.Manual,
		AutoDeps:        summary.Auto,
	})
	if err != nil {
		return summary, err
	}

	return summary, nil
}
