package tuning

import (
	"os"
	"time"
)

// Watcher polls file modification times and reports changes through a
// callback, typically wired to Loader.Invalidate.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(string) // receives the path that changed
	stopCh   chan struct{}
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher for the given paths. A non-positive
// interval defaults to two seconds.
func NewWatcher(paths []string, interval time.Duration, onChange func(string)) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		mtimes:   make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// scan compares mtimes against the previous pass. On the priming pass
// it only records what it sees. A file appearing for the first time
// after priming also counts as a change.
func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue // absent layers are legal
		}
		mt := fi.ModTime()
		last, seen := w.mtimes[p]
		w.mtimes[p] = mt
		if prime {
			continue
		}
		if (!seen || mt.After(last)) && w.onChange != nil {
			w.onChange(p)
		}
	}
}
