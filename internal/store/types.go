package store

import "time"

// Run records one init, analyze, or lock pass with its classification
// counts.
type Run struct {
	ID              int64
	RanAt           time.Time
	Command         string // "init", "analyze", or "lock"
	TotalPackages   int
	DefaultPackages int
	ManualPackages  int
	AutoDeps        int
	// LockPath and LockChecksum are set for lock runs only.
	LockPath     string
	LockChecksum string
}
