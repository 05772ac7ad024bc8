// Package dnf adapts the Fedora package-manager commands (dnf, rpm)
// into the package sets and records the rest of the tool consumes.
package dnf

import (
	"context"
	"time"

	"github.com/blackwell-systems/dnflock/internal/classify"
	"github.com/blackwell-systems/dnflock/internal/lockfile"
)

// DefaultTimeout bounds each external package-manager invocation. A
// query that exceeds it fails; it is never retried or masked as an
// empty set.
const DefaultTimeout = 10 * time.Second

// Queries is the package-manager capability the classifier and codec
// depend on. Implementations query the live system; tests supply fakes.
type Queries interface {
	// Installed returns the names of all installed packages.
	Installed(ctx context.Context) (classify.Set, error)
	// Defaults returns the names of the distribution-default packages.
	Defaults(ctx context.Context) (classify.Set, error)
	// UserInstalled returns the names of packages explicitly requested
	// by the user.
	UserInstalled(ctx context.Context) (classify.Set, error)
	// Records returns full package records for the named packages.
	Records(ctx context.Context, names []string) ([]lockfile.Record, error)
	// Repositories returns the configured repositories and whether each
	// is enabled.
	Repositories(ctx context.Context) ([]lockfile.RepoStatus, error)
	// SystemIdentity returns a human-readable OS identity string for the
	// lock-file header.
	SystemIdentity(ctx context.Context) (string, error)
}
