// Package output provides terminal output utilities for dnflock:
// plain-text tables for classification results and lock-file records,
// progress bars and spinners for long-running queries, and
// human-readable size formatting. ANSI colors are emitted only on TTYs
// and respect NO_COLOR.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/dnflock/internal/lockfile"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is
// not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// ClassificationSummary is the per-run breakdown rendered after an
// analyze pass. Percentages use truncating division over Total.
type ClassificationSummary struct {
	Total   int
	Default int
	Manual  int
	Auto    int
}

// RenderClassificationSummary renders the analyze result breakdown.
func RenderClassificationSummary(s ClassificationSummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-18s %8s %6s\n", "Class", "Packages", "Share"))
	sb.WriteString(strings.Repeat("─", 36))
	sb.WriteString("\n")

	rows := []struct {
		label string
		count int
	}{
		{"default/base", s.Default},
		{"manual", s.Manual},
		{"auto-dependency", s.Auto},
	}
	for _, row := range rows {
		pct := 0
		if s.Total > 0 {
			pct = row.count * 100 / s.Total
		}
		sb.WriteString(fmt.Sprintf("%-18s %8d %5d%%\n", row.label, row.count, pct))
	}

	sb.WriteString(strings.Repeat("─", 36))
	sb.WriteString(fmt.Sprintf("\n%-18s %8d\n", "total installed", s.Total))
	return sb.String()
}

// RenderRecordTable renders lock-file package records with humanized
// sizes and install times.
func RenderRecordTable(records []lockfile.Record) string {
	if len(records) == 0 {
		return "No packages recorded.\n"
	}

	sorted := make([]lockfile.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %-14s %-10s %-8s %-9s %s\n",
		"Package", "Version", "Release", "Arch", "Size", "Repository"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, rec := range sorted {
		sb.WriteString(fmt.Sprintf("%-24s %-14s %-10s %-8s %-9s %s\n",
			truncate(rec.Name, 24),
			truncate(rec.Version, 14),
			truncate(rec.Release, 10),
			rec.Arch,
			humanize.Bytes(uint64(rec.SizeBytes)),
			rec.Repository))
	}

	return sb.String()
}

// RenderDiffTable renders a three-way comm split between two lock files.
func RenderDiffTable(section string, onlyA, onlyB, both []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %d only in A, %d only in B, %d in both\n",
		section, len(onlyA), len(onlyB), len(both)))

	for _, name := range onlyA {
		sb.WriteString(colorize(colorGreen, "  - "+name) + "\n")
	}
	for _, name := range onlyB {
		sb.WriteString(colorize(colorYellow, "  + "+name) + "\n")
	}

	return sb.String()
}

// RenderCategoryTable renders the category breakdown from stats.
func RenderCategoryTable(categories map[string][]string) string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-14s %8s  %s\n", "Category", "Packages", "Members"))
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")

	for _, name := range names {
		members := categories[name]
		preview := strings.Join(members, ", ")
		sb.WriteString(fmt.Sprintf("%-14s %8d  %s\n", name, len(members), truncate(preview, 40)))
	}

	return sb.String()
}

// FormatRelativeTime renders a timestamp as a coarse relative age for
// status output.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return colorize(colorGray, "never")
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncate shortens s to max characters, appending "…" when trimmed.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
