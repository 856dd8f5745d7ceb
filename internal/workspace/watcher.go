package workspace

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"inkpad/internal/debug"
)

// LocationWatcher watches location roots for changes and reports which
// location needs reindexing. Events are debounced per location: a burst of
// writes under one root collapses into a single notification.
type LocationWatcher struct {
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	watching   map[string]int64 // watched root path -> location id
	notify     chan int64
	done       chan struct{}
	debounceMs int
}

// NewLocationWatcher creates a watcher. debounceMs <= 0 selects the 200ms
// default.
func NewLocationWatcher(debounceMs int) (*LocationWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 200
	}

	lw := &LocationWatcher{
		watcher:    w,
		watching:   make(map[string]int64),
		notify:     make(chan int64, 10),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}

	go lw.run()
	return lw, nil
}

func (lw *LocationWatcher) run() {
	lastEvent := make(map[int64]time.Time)
	pending := make(map[int64]bool)
	ticker := time.NewTicker(time.Duration(lw.debounceMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-lw.done:
			return

		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Write) {
				if id, ok := lw.locationFor(event.Name); ok {
					lw.mu.Lock()
					lastEvent[id] = time.Now()
					pending[id] = true
					lw.mu.Unlock()
					debug.Log(debug.WATCH, "FSNotify event: %s on %s (location %d)", event.Op, event.Name, id)
				}
			}

		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "FSNotify error: %v", err)

		case <-ticker.C:
			now := time.Now()
			debounce := time.Duration(lw.debounceMs) * time.Millisecond

			lw.mu.Lock()
			for id, isPending := range pending {
				if isPending && now.Sub(lastEvent[id]) >= debounce {
					select {
					case lw.notify <- id:
						debug.Log(debug.WATCH, "Location change notification: %d", id)
					default:
						// Channel full, skip; the next event retriggers.
					}
					delete(pending, id)
					delete(lastEvent, id)
				}
			}
			lw.mu.Unlock()
		}
	}
}

// locationFor maps a changed path to the watched location root that
// contains it.
func (lw *LocationWatcher) locationFor(changed string) (int64, bool) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	for root, id := range lw.watching {
		if changed == root || isUnder(root, changed) {
			return id, true
		}
	}
	return 0, false
}

func isUnder(root, p string) bool {
	if len(p) <= len(root) {
		return false
	}
	return p[:len(root)] == root && (p[len(root)] == '/' || p[len(root)] == '\\')
}

// Watch adds a location root to the watch list.
func (lw *LocationWatcher) Watch(locationID int64, root string) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, ok := lw.watching[root]; ok {
		return nil
	}
	if err := lw.watcher.Add(root); err != nil {
		return err
	}
	lw.watching[root] = locationID
	debug.Log(debug.WATCH, "Now watching location %d at %s", locationID, root)
	return nil
}

// Unwatch removes a location root from the watch list.
func (lw *LocationWatcher) Unwatch(root string) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, ok := lw.watching[root]; !ok {
		return
	}
	// Removal errors are ignored; the path may already be gone.
	lw.watcher.Remove(root)
	delete(lw.watching, root)
}

// Notify returns the channel carrying location ids that need reindexing.
func (lw *LocationWatcher) Notify() <-chan int64 {
	return lw.notify
}

// Close shuts down the watcher.
func (lw *LocationWatcher) Close() error {
	close(lw.done)
	return lw.watcher.Close()
}
