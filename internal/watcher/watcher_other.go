//go:build !darwin && !windows

package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// Watcher watches one folder using fsnotify (inotify, kqueue)
type Watcher struct {
	fsw     *fsnotify.Watcher
	root    string
	opts    options
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// New creates a new filesystem watcher
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:     fsw,
		opts:    buildOptions(opts),
		eventCh: make(chan Event, 100),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel for receiving filesystem events
func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// Add starts watching the direct children of root
func (w *Watcher) Add(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	w.root = filepath.Clean(abs)
	return w.fsw.Add(w.root)
}

// Start begins delivering events
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	// A Rename reports the old name; on the same folder it is followed
	// by a Create for the new name. An unmatched Rename is a move out.
	var pending string
	var window <-chan time.Time

	flush := func() {
		if pending != "" {
			w.send(Event{Type: EventMovedOut, Path: pending})
			pending = ""
			window = nil
		}
	}

	for {
		select {
		case <-w.done:
			return

		case <-window:
			flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Watch.Warnf("fsnotify error: %v", err)

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			if !inFolder(w.root, path) {
				logging.Watch.Debugf("ignoring %s on %s", ev.Op, path)
				continue
			}

			switch {
			case ev.Has(fsnotify.Rename):
				flush()
				pending = path
				window = time.After(w.opts.renameWindow)

			case ev.Has(fsnotify.Create):
				if pending != "" {
					w.send(Event{Type: EventRenamed, Path: path, OldPath: pending})
					pending = ""
					window = nil
					continue
				}
				w.send(Event{Type: EventCreated, Path: path})

			case ev.Has(fsnotify.Remove):
				flush()
				w.send(Event{Type: EventDeleted, Path: path})
			}
		}
	}
}

func (w *Watcher) send(ev Event) {
	if !filter(ev) {
		return
	}
	logging.Watch.Debugf("%s %s (old %q)", ev.Type, ev.Path, ev.OldPath)
	select {
	case w.eventCh <- ev:
	case <-w.done:
	}
}

// Stop stops the watcher and closes the event channel
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	close(w.eventCh)
	return err
}
