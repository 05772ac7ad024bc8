// Package watcher observes the rpm database directory and triggers a
// re-analysis when the installed-package set changes outside dnflock.
package watcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultRPMDBDir is the rpm database location watched for package
// transactions.
const DefaultRPMDBDir = "/var/lib/rpm"

// defaultDebounce batches the burst of file events a single dnf
// transaction produces into one callback.
const defaultDebounce = 2 * time.Second

// Watcher watches a directory for writes and invokes a callback after
// the event burst settles.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func()

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher for dir. onChange runs (on the watcher
// goroutine) after each debounced burst of changes.
func New(dir string, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		debounce: defaultDebounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides the debounce interval (useful for testing).
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching. It returns once the watch is registered; event
// handling runs on a background goroutine until Stop.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Restart the debounce window on every relevant event.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)

		case <-timerC:
			timerC = nil
			timer = nil
			w.onChange()

		case <-w.stopCh:
			return
		}
	}
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.wg.Wait()
	return nil
}
