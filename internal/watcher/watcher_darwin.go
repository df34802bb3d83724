//go:build darwin

package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsevents"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// Watcher watches one folder using macOS FSEvents
type Watcher struct {
	stream  *fsevents.EventStream
	root    string
	opts    options
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

func New(opts ...Option) (*Watcher, error) {
	return &Watcher{
		opts:    buildOptions(opts),
		eventCh: make(chan Event, 100),
		done:    make(chan struct{}),
	}, nil
}

func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

func (w *Watcher) Add(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	// FSEvents reports resolved paths (/private/var for /var)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	w.root = filepath.Clean(abs)

	dev, err := fsevents.DeviceForPath(w.root)
	if err != nil {
		return err
	}

	w.stream = &fsevents.EventStream{
		Paths:   []string{w.root},
		Latency: w.opts.renameWindow,
		Device:  dev,
		Flags:   fsevents.FileEvents | fsevents.WatchRoot,
	}
	return nil
}

func (w *Watcher) Start() {
	if w.stream == nil {
		return
	}
	w.stream.Start()
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case events, ok := <-w.stream.Events:
			if !ok {
				return
			}
			w.handleBatch(events)
		}
	}
}

// handleBatch translates one FSEvents batch. Both halves of a rename
// carry ItemRenamed with consecutive IDs: the half whose path no longer
// exists is the old name.
func (w *Watcher) handleBatch(events []fsevents.Event) {
	var pending string

	for _, event := range events {
		path := event.Path
		if len(path) > 0 && path[0] != '/' {
			path = "/" + path
		}
		path = filepath.Clean(path)
		if !inFolder(w.root, path) {
			continue
		}

		exists := pathExists(path)
		switch {
		case event.Flags&fsevents.ItemRenamed != 0:
			if exists {
				if pending != "" {
					w.send(Event{Type: EventRenamed, Path: path, OldPath: pending})
					pending = ""
				} else {
					w.send(Event{Type: EventMovedIn, Path: path})
				}
			} else {
				if pending != "" {
					w.send(Event{Type: EventMovedOut, Path: pending})
				}
				pending = path
			}

		case event.Flags&fsevents.ItemRemoved != 0 && !exists:
			w.send(Event{Type: EventDeleted, Path: path})

		case event.Flags&fsevents.ItemCreated != 0 && exists:
			w.send(Event{Type: EventCreated, Path: path})
		}
	}

	if pending != "" {
		w.send(Event{Type: EventMovedOut, Path: pending})
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
	case <-time.After(time.Second):
		logging.Watch.Warnf("dropped %s %s: consumer not reading", ev.Type, ev.Path)
	}
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	if w.stream != nil {
		w.stream.Stop()
	}
	w.wg.Wait()
	close(w.eventCh)
	return nil
}
