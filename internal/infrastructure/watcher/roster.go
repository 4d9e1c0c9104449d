// Package watcher notifies callers when a roster file changes on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Op describes what happened to the watched file.
type Op int

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change is the last event seen for the file within one debounce window.
type Change struct {
	Path   string
	Op     Op
	Time   time.Time
	Events int
}

// Handler is invoked once per settled burst of changes.
type Handler func(ctx context.Context, change Change)

// Options configures a RosterWatcher.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// RosterWatcher watches a single file. Editors often replace files by
// rename, so the parent directory is watched and events are filtered by name.
type RosterWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	running  bool
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, handler Handler, opts Options) (*RosterWatcher, error) {
	if handler == nil {
		return nil, errors.New("watcher: handler is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &RosterWatcher{
		path:     abs,
		watcher:  fw,
		handler:  handler,
		debounce: opts.Debounce,
		logger:   opts.Logger.With("path", abs),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *RosterWatcher) Path() string {
	return w.path
}

// Start begins watching. It returns once the watch is registered; events
// are handled on a background goroutine until ctx ends or Stop is called.
func (w *RosterWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true

	go w.loop(ctx)
	return nil
}

// Stop ends the watch and waits for an in-flight handler call to return.
// It is safe to call more than once.
func (w *RosterWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.stopped
		}
	})
}

func (w *RosterWatcher) loop(ctx context.Context) {
	defer close(w.stopped)

	var (
		pending *Change
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	flush := func() {
		if pending != nil {
			w.logger.Debug("roster file changed", "op", pending.Op.String(), "events", pending.Events)
			w.handler(ctx, *pending)
			pending = nil
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			op, relevant := convertOp(event.Op)
			if !relevant {
				continue
			}

			events := 1
			if pending != nil {
				events = pending.Events + 1
			}
			pending = &Change{Path: w.path, Op: op, Time: time.Now(), Events: events}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		case <-timerC:
			flush()
		}
	}
}

// convertOp maps fsnotify operations; chmod alone is ignored.
func convertOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return 0, false
	}
}
