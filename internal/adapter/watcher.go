package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	m "gofold.dev/pkg/gofold/internal/model"
)

// DefaultWatchDebounce is how long a file has to stay quiet before a change is reported.
const DefaultWatchDebounce = 200 * time.Millisecond

// SourceWatcher reports changes to a set of source files. Editors often
// replace files instead of writing them in place, so the parent directories
// are watched and events are filtered by file name.
type SourceWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration

	changes chan m.Path
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool
	pending map[string]time.Time
}

// NewSourceWatcher creates a watcher for paths. A non-positive debounce uses
// DefaultWatchDebounce.
func NewSourceWatcher(debounce time.Duration, paths ...m.Path) (*SourceWatcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	sw := &SourceWatcher{
		watcher:  watcher,
		files:    make(map[string]bool, len(paths)),
		debounce: debounce,
		changes:  make(chan m.Path, len(paths)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		pending:  make(map[string]time.Time),
	}

	dirs := make(map[string]bool)

	for _, p := range paths {
		abs, err := filepath.Abs(string(p))
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}

		sw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return sw, nil
}

// Changes delivers the path of every watched file that changed.
func (sw *SourceWatcher) Changes() <-chan m.Path {
	return sw.changes
}

// Start runs the event loop until ctx is done or Stop is called.
func (sw *SourceWatcher) Start(ctx context.Context) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.running {
		return
	}

	sw.running = true

	go sw.run(ctx)
}

// Stop ends the event loop and releases the underlying watcher.
func (sw *SourceWatcher) Stop() {
	sw.mu.Lock()
	running := sw.running
	sw.running = false
	sw.mu.Unlock()

	if running {
		close(sw.stopCh)
		<-sw.doneCh
	}

	if err := sw.watcher.Close(); err != nil {
		slog.Warn("failed to close watcher", "error", err)
	}
}

func (sw *SourceWatcher) run(ctx context.Context) {
	defer close(sw.doneCh)

	ticker := time.NewTicker(sw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.stopCh:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}

			sw.handleEvent(event)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}

			slog.Warn("watcher error", "error", err)
		case <-ticker.C:
			sw.flush()
		}
	}
}

func (sw *SourceWatcher) handleEvent(event fsnotify.Event) {
	if !sw.files[filepath.Clean(event.Name)] {
		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	sw.mu.Lock()
	sw.pending[filepath.Clean(event.Name)] = time.Now()
	sw.mu.Unlock()
}

func (sw *SourceWatcher) flush() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	for path, at := range sw.pending {
		if now.Sub(at) < sw.debounce {
			continue
		}

		select {
		case sw.changes <- m.Path(path):
			delete(sw.pending, path)
		default:
			// Receiver is behind; try again on the next tick.
		}
	}
}
