package dnf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/dnflock/internal/classify"
	"github.com/blackwell-systems/dnflock/internal/lockfile"
)

// recordQueryFormat asks dnf repoquery for exactly the seven lock-file
// record fields, pipe-delimited.
const recordQueryFormat = "%{name}|%{version}|%{release}|%{arch}|%{size}|%{installtime}|%{from_repo}\n"

// CLI queries the system package manager by exec-ing dnf and rpm.
type CLI struct {
	// Timeout bounds each external command; DefaultTimeout when zero.
	Timeout time.Duration
}

// NewCLI returns a CLI adapter with the default query timeout.
func NewCLI() *CLI {
	return &CLI{Timeout: DefaultTimeout}
}

func (c *CLI) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s %s timed out after %s", name, strings.Join(args, " "), timeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s failed: %w (stderr: %s)", name, err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return output, nil
}

// Installed returns all installed package names via rpm.
func (c *CLI) Installed(ctx context.Context) (classify.Set, error) {
	output, err := c.run(ctx, "rpm", "-qa", "--queryformat", "%{NAME}\n")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}
	return parseNameLines(string(output)), nil
}

// UserInstalled returns the packages dnf records as explicitly
// requested by the user.
func (c *CLI) UserInstalled(ctx context.Context) (classify.Set, error) {
	output, err := c.run(ctx, "dnf", "repoquery", "--userinstalled", "--queryformat", "%{name}\n")
	if err != nil {
		return nil, fmt.Errorf("failed to list user-installed packages: %w", err)
	}
	return parseNameLines(string(output)), nil
}

// Defaults returns the distribution-default package set: the members of
// the core and minimal-environment comps groups.
func (c *CLI) Defaults(ctx context.Context) (classify.Set, error) {
	output, err := c.run(ctx, "dnf", "group", "info", "-q", "core")
	if err != nil {
		return nil, fmt.Errorf("failed to query default package group: %w", err)
	}
	return parseGroupInfo(string(output)), nil
}

// Records returns full lock-file records for the named packages.
func (c *CLI) Records(ctx context.Context, names []string) ([]lockfile.Record, error) {
	if len(names) == 0 {
		return nil, nil
	}

	args := append([]string{"repoquery", "--installed", "--queryformat", recordQueryFormat}, names...)
	output, err := c.run(ctx, "dnf", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query package records: %w", err)
	}

	var records []lockfile.Record
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := lockfile.RecordFromRow(strings.Split(line, "|"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse repoquery line %q: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Repositories returns all configured repositories with their
// enabled/disabled state, via `dnf repolist --all`.
func (c *CLI) Repositories(ctx context.Context) ([]lockfile.RepoStatus, error) {
	output, err := c.run(ctx, "dnf", "repolist", "--all", "-q")
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return parseRepolist(string(output)), nil
}

// SystemIdentity reads the OS pretty name from os-release, falling back
// to hostname when unavailable.
func (c *CLI) SystemIdentity(ctx context.Context) (string, error) {
	data, err := os.ReadFile("/etc/os-release")
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if value, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
				if name, err := strconv.Unquote(value); err == nil {
					return name, nil
				}
				return value, nil
			}
		}
	}

	host, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to determine system identity: %w", err)
	}
	return host, nil
}

// parseNameLines converts one-name-per-line command output into a Set,
// skipping blank lines.
func parseNameLines(output string) classify.Set {
	set := classify.NewSet()
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			set.Add(name)
		}
	}
	return set
}

// parseGroupInfo extracts package names from `dnf group info` output.
// Example input:
//
//	Group: Core
//	 Description: Smallest possible installation
//	 Mandatory Packages:
//	   bash
//	   coreutils
//	 Default Packages:
//	   dnf
//
// Only indented lines under a "... Packages:" heading count as members.
func parseGroupInfo(output string) classify.Set {
	set := classify.NewSet()
	inPackageList := false

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasSuffix(trimmed, "Packages:") {
			inPackageList = true
			continue
		}
		// Any other heading (ends with ":") leaves the package list.
		if strings.HasSuffix(trimmed, ":") {
			inPackageList = false
			continue
		}

		if inPackageList && strings.HasPrefix(line, " ") {
			set.Add(trimmed)
		}
	}

	return set
}

// parseRepolist extracts repository ids and states from
// `dnf repolist --all` output. Example input:
//
//	repo id          repo name                 status
//	fedora           Fedora 39 - x86_64        enabled
//	updates-testing  Fedora 39 - Test Updates  disabled
func parseRepolist(output string) []lockfile.RepoStatus {
	var repos []lockfile.RepoStatus
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// Header row.
		if fields[0] == "repo" {
			continue
		}
		state := fields[len(fields)-1]
		if state != "enabled" && state != "disabled" {
			continue
		}
		repos = append(repos, lockfile.RepoStatus{
			Name:    fields[0],
			Enabled: state == "enabled",
		})
	}
	return repos
}
