package backend

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	// KindFiles carries the sorted paths whose modification state changed.
	KindFiles Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// PathSource lists the files to watch, keyed by whatever the caller uses to
// identify them.
type PathSource func() map[string]string

type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

// Watcher polls file-backed tabs at a fixed interval and publishes an event
// whenever a watched file changes, appears or disappears.
type Watcher struct {
	paths    PathSource
	interval time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
	seen   map[string]fileState
}

// NewWatcher creates a watcher that stats every path from paths each interval.
func NewWatcher(paths PathSource, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		paths:    paths,
		interval: interval,
		throttle: newThrottle(interval / 4),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		seen:     make(map[string]fileState),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current scan; use Wait
// if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	w.scan()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			changed := w.scan()
			if len(changed) == 0 {
				continue
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Kind: KindFiles, Data: changed}:
			}
		}
	}
}

// scan stats every watched path and returns the ones whose state differs from
// the previous scan. Paths seen for the first time only set a baseline.
func (w *Watcher) scan() []string {
	if err := w.throttle.wait(w.ctx); err != nil {
		return nil
	}
	var targets map[string]string
	if w.paths != nil {
		targets = w.paths()
	}
	current := make(map[string]fileState, len(targets))
	var changed []string
	for _, path := range targets {
		if _, done := current[path]; done {
			continue
		}
		st := statFile(path)
		current[path] = st
		prev, known := w.seen[path]
		if known && prev != st {
			changed = append(changed, path)
		}
	}
	w.seen = current
	sort.Strings(changed)
	return changed
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}
}
