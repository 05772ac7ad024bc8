package watcher

import (
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_RequiresCallback(t *testing.T) {
	if _, err := New(t.TempDir(), nil); err == nil {
		t.Error("New() with nil callback should fail")
	}
}

func TestNew_RequiresExistingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := New(missing, func() {}); err == nil {
		t.Error("New() with missing directory should fail")
	}
}

func TestWatcher_DebouncesBurstIntoOneCallback(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w, err := New(dir, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	w.SetDebounce(100 * time.Millisecond)

	if err := w.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer w.Stop()

	// Simulate a dnf transaction touching several db files quickly.
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "Packages"+string(rune('a'+i)))
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// Wait past the debounce window.
	deadline := time.After(2 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("callback never fired")
		case <-time.After(20 * time.Millisecond):
		}
	}

	// Allow any stragglers, then check the burst collapsed.
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}
}

func TestIsDaemonRunning_NoPIDFile(t *testing.T) {
	running, err := IsDaemonRunning(filepath.Join(t.TempDir(), "watch.pid"))
	if err != nil {
		t.Fatalf("IsDaemonRunning() failed: %v", err)
	}
	if running {
		t.Error("missing PID file should report not running")
	}
}

func TestIsDaemonRunning_CurrentProcess(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning() failed: %v", err)
	}
	if !running {
		t.Error("current process should report running")
	}
}

func TestIsDaemonRunning_InvalidPID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("notapid\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := IsDaemonRunning(pidFile); err == nil {
		t.Error("garbage PID file should be an error")
	}
}
