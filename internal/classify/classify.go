// Package classify derives manual and auto-dependency package sets from
// the installed-package inventory via set algebra.
package classify

import "fmt"

// Result holds the outcome of classifying an installed-package inventory.
type Result struct {
	// Manual is the set of packages the user explicitly requested,
	// excluding distribution defaults.
	Manual Set
	// Auto is the set of installed packages that are neither defaults
	// nor manually requested.
	Auto Set
}

// Classify splits the installed inventory into manual and auto-dependency
// sets:
//
//	manual = userInstalled − defaults
//	auto   = (allInstalled − defaults) − manual
//
// Manual is derived from userInstalled first, so a package that is both
// explicitly requested and pulled in as a dependency classifies as manual.
// Callers must ensure userInstalled ⊆ allInstalled; if they don't, Manual
// may contain names absent from allInstalled.
func Classify(allInstalled, defaults, userInstalled Set) Result {
	manual := userInstalled.Diff(defaults)
	auto := allInstalled.Diff(defaults).Diff(manual)
	return Result{Manual: manual, Auto: auto}
}

// Percent returns the integer progress percentage for processed items out
// of total, using truncating division: Percent(3, 7) == 42, not 43.
func Percent(processed, total int) int {
	if total <= 0 {
		return 0
	}
	return processed * 100 / total
}

// Chunk splits items into consecutive batches of at most size elements.
// The final batch holds the remainder when len(items) is not a multiple
// of size.
func Chunk(items []string, size int) ([][]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d (must be positive)", size)
	}
	var chunks [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}
