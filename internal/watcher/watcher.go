// Package watcher provides file system monitoring for automatic renaming.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dashify/internal/normalizer"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	Debounce time.Duration // Delay before a pass runs after the last event (default: 2s)
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce: 2 * time.Second,
	}
}

// WatchSummary contains stats from the watch session.
type WatchSummary struct {
	Passes   int // Rename passes triggered
	Renamed  int // Entries renamed across all passes
	Failures int // Passes that ended with an error
	Duration time.Duration
}

// PassHandler runs one rename pass over the watched directory after
// events settle. It returns the number of entries renamed.
type PassHandler func() (renamed int, err error)

// Watcher monitors a directory for new underscored entries and triggers
// rename passes.
type Watcher struct {
	config       *WatchConfig
	handler      PassHandler
	fsWatcher    *fsnotify.Watcher
	debouncer    *Debouncer
	passRequests chan struct{}
	done         chan struct{}
	wg           sync.WaitGroup
	startTime    time.Time

	// Statistics tracking
	mu       sync.Mutex
	passes   int
	renamed  int
	failures int
}

// New creates a new Watcher with the given configuration.
// If config is nil, default configuration is used.
// The handler is called whenever a settled batch of events needs a pass.
func New(config *WatchConfig, handler PassHandler) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	return &Watcher{
		config:  config,
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Start begins watching the specified directory for new entries.
// It returns an error if the watcher cannot be initialized.
// The watcher runs until Stop() is called.
func (w *Watcher) Start(dir string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		w.fsWatcher.Close()
		return err
	}

	// A burst of new entries settles into a single pass.
	w.debouncer = NewDebouncer(w.config.Debounce, w.schedulePass)

	w.startTime = time.Now()
	w.done = make(chan struct{})
	w.passRequests = make(chan struct{}, 1)

	// Start the event processing goroutine
	w.wg.Add(1)
	go w.processEvents()

	// Passes run one at a time on a tracked goroutine, so Stop waits
	// for an in-flight pass instead of abandoning it mid-apply.
	w.wg.Add(1)
	go w.runPasses()

	return nil
}

// Stop gracefully shuts down the watcher and returns a summary of the
// session. A pass that is already running finishes first and its outcome
// is counted; a pass still waiting on its debounce delay is dropped.
func (w *Watcher) Stop() *WatchSummary {
	// Drop any pass still waiting on its debounce delay
	if w.debouncer != nil {
		w.debouncer.Cancel()
	}

	// Signal the goroutines to stop
	close(w.done)

	// Wait for event processing and any in-flight pass to finish
	w.wg.Wait()

	// Close the fsnotify watcher
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	// Build and return the summary
	w.mu.Lock()
	defer w.mu.Unlock()

	return &WatchSummary{
		Passes:   w.passes,
		Renamed:  w.renamed,
		Failures: w.failures,
		Duration: time.Since(w.startTime),
	}
}

// processEvents handles file system events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Only process Create events (new entries)
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.handleCreate(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleCreate schedules a pass when a new entry needs renaming.
// Entries without underscores are ignored; the pass's own renames
// produce hyphenated names, so they never re-trigger it.
func (w *Watcher) handleCreate(path string) {
	if !normalizer.NeedsRename(filepath.Base(path)) {
		return
	}
	w.debouncer.Trigger()
}

// schedulePass queues a rename pass. A request landing while one is
// already queued collapses into it; the queued pass picks up whatever
// entries have arrived by the time it runs.
func (w *Watcher) schedulePass() {
	select {
	case w.passRequests <- struct{}{}:
	default:
	}
}

// runPasses executes queued rename passes one at a time, so a batch
// settling while a pass is still applying waits its turn instead of
// racing it.
func (w *Watcher) runPasses() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case <-w.passRequests:
			w.runPass()
		}
	}
}

// runPass invokes the handler and records its outcome.
func (w *Watcher) runPass() {
	if w.handler == nil {
		return
	}
	renamed, err := w.handler()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.passes++
	w.renamed += renamed
	if err != nil {
		w.failures++
	}
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
