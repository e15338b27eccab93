// Package watch regenerates the deck when its assets change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"deckgen/internal/logging"
)

// Stats counts watcher activity.
type Stats struct {
	Events int
	Runs   int
	Errors int
}

// Watcher runs a regenerate function after asset changes settle. Runs are
// serial and happen on the watcher's own goroutine.
type Watcher struct {
	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	imagesDir  string
	logo       string
	debounce   time.Duration
	regenerate func(ctx context.Context) error

	pending   bool
	lastEvent time.Time
	stats     Stats

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New returns a Watcher for every file in imagesDir plus the logo file.
func New(imagesDir, logo string, debounce time.Duration, regenerate func(ctx context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		watcher:    fw,
		imagesDir:  filepath.Clean(imagesDir),
		logo:       filepath.Clean(logo),
		debounce:   debounce,
		regenerate: regenerate,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. A directory that does not exist is
// logged and skipped.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// The logo's directory is watched rather than the file so that editors
	// replacing it by rename are still seen.
	for _, dir := range []string{w.imagesDir, filepath.Dir(w.logo)} {
		if err := w.watcher.Add(dir); err != nil {
			logging.Warn("watch skipped", "dir", dir, "error", err)
			continue
		}
		logging.Info("watching", "dir", dir)
	}

	go w.run(ctx)
	return nil
}

// Stop ends the loop and waits for an in-flight run to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Error("close watcher", "error", err)
	}
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watch error", "error", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// relevant reports whether path is an asset: anything in the image
// directory, or the logo itself.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	return path == w.logo || filepath.Dir(path) == w.imagesDir
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.relevant(event.Name) {
		return
	}
	logging.Debug("asset changed", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	w.stats.Events++
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// flush regenerates once the last event is older than the debounce window.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.stats.Runs++
	w.mu.Unlock()

	if err := w.regenerate(ctx); err != nil {
		logging.Error("regenerate failed", "error", err)
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
	}
}
