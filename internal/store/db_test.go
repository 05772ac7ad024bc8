package store

import (
	"errors"
	"testing"
	"time"
)

// Helper function to create an in-memory store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return store
}

func TestNew(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("Store.db should not be nil")
	}
}

func TestCreateSchema(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	var name string
	err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&name)
	if err != nil {
		t.Errorf("runs table not found: %v", err)
	}

	for _, index := range []string{"idx_runs_ran_at", "idx_runs_command"} {
		err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&name)
		if err != nil {
			t.Errorf("index %s not found: %v", index, err)
		}
	}
}

// ListRuns on a fresh DB without CreateSchema surfaces the
// not-initialized sentinel instead of a raw driver error.
func TestListRuns_NoSchema_ReturnsErrNotInitialized(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	_, err = s.ListRuns(10)
	if err == nil {
		t.Fatal("ListRuns() should return an error on uninitialized DB")
	}
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ListRuns() error = %v; want errors.Is(err, ErrNotInitialized) to be true", err)
	}
}

func TestErrNotInitialized_ErrorMessage(t *testing.T) {
	msg := ErrNotInitialized.Error()
	if msg == "" {
		t.Error("ErrNotInitialized.Error() should not be empty")
	}
}

func TestInsertAndListRuns(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	first := &Run{
		RanAt:           time.Now().Add(-time.Hour),
		Command:         "analyze",
		TotalPackages:   13,
		DefaultPackages: 6,
		ManualPackages:  4,
		AutoDeps:        3,
	}
	if _, err := store.InsertRun(first); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	second := &Run{
		RanAt:           time.Now(),
		Command:         "lock",
		TotalPackages:   13,
		DefaultPackages: 6,
		ManualPackages:  4,
		AutoDeps:        3,
		LockPath:        "/home/u/fedora-packages/packages.lock",
		LockChecksum:    "deadbeef",
	}
	id, err := store.InsertRun(second)
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if id == 0 {
		t.Error("InsertRun() returned id 0")
	}

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].Command != "lock" {
		t.Errorf("first run command = %q, want lock", runs[0].Command)
	}
	if runs[0].LockPath == "" || runs[0].LockChecksum != "deadbeef" {
		t.Errorf("lock run metadata missing: %+v", runs[0])
	}
	if runs[1].ManualPackages != 4 || runs[1].AutoDeps != 3 {
		t.Errorf("analyze run counts wrong: %+v", runs[1])
	}
}

func TestListRuns_Limit(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	for i := 0; i < 5; i++ {
		run := &Run{RanAt: time.Now().Add(time.Duration(i) * time.Second), Command: "analyze"}
		if _, err := store.InsertRun(run); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}

	runs, err := store.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}

func TestLastRun(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	// No runs yet.
	run, err := store.LastRun("analyze")
	if err != nil {
		t.Fatalf("LastRun() failed: %v", err)
	}
	if run != nil {
		t.Errorf("LastRun() on empty table = %+v, want nil", run)
	}

	old := &Run{RanAt: time.Now().Add(-2 * time.Hour), Command: "analyze", ManualPackages: 1}
	if _, err := store.InsertRun(old); err != nil {
		t.Fatal(err)
	}
	recent := &Run{RanAt: time.Now(), Command: "analyze", ManualPackages: 7}
	if _, err := store.InsertRun(recent); err != nil {
		t.Fatal(err)
	}
	other := &Run{RanAt: time.Now(), Command: "lock"}
	if _, err := store.InsertRun(other); err != nil {
		t.Fatal(err)
	}

	run, err = store.LastRun("analyze")
	if err != nil {
		t.Fatalf("LastRun() failed: %v", err)
	}
	if run == nil || run.ManualPackages != 7 {
		t.Errorf("LastRun() = %+v, want most recent analyze run", run)
	}
}
