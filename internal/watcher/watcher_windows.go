//go:build windows

package watcher

import (
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// Watcher watches one folder using Windows ReadDirectoryChangesW
type Watcher struct {
	handle  windows.Handle
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
	w.root = filepath.Clean(abs)

	pathPtr, err := windows.UTF16PtrFromString(w.root)
	if err != nil {
		return err
	}

	handle, err := windows.CreateFile(
		pathPtr,
		windows.FILE_LIST_DIRECTORY,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return err
	}

	w.handle = handle
	return nil
}

func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

const notifyFilter = windows.FILE_NOTIFY_CHANGE_FILE_NAME | windows.FILE_NOTIFY_CHANGE_DIR_NAME

func (w *Watcher) run() {
	defer w.wg.Done()
	buf := make([]byte, 64*1024)

	for {
		select {
		case <-w.done:
			return
		default:
		}

		var bytesReturned uint32
		err := windows.ReadDirectoryChanges(
			w.handle,
			&buf[0],
			uint32(len(buf)),
			false, // direct children only
			notifyFilter,
			&bytesReturned,
			nil,
			0,
		)
		if err != nil {
			logging.Watch.Debugf("ReadDirectoryChanges stopped: %v", err)
			return
		}

		if bytesReturned > 0 {
			w.processEvents(buf[:bytesReturned])
		}
	}
}

const (
	fileActionAdded          = 1
	fileActionRemoved        = 2
	fileActionRenamedOldName = 4
	fileActionRenamedNewName = 5
)

func (w *Watcher) processEvents(buf []byte) {
	var pending string

	for len(buf) >= 12 {
		nextOffset := *(*uint32)(unsafe.Pointer(&buf[0]))
		action := *(*uint32)(unsafe.Pointer(&buf[4]))
		nameLen := *(*uint32)(unsafe.Pointer(&buf[8]))

		if len(buf) >= 12+int(nameLen) {
			name := windows.UTF16ToString((*[1 << 15]uint16)(unsafe.Pointer(&buf[12]))[:nameLen/2])
			path := filepath.Join(w.root, name)

			switch action {
			case fileActionAdded:
				w.send(Event{Type: EventCreated, Path: path})
			case fileActionRemoved:
				w.send(Event{Type: EventDeleted, Path: path})
			case fileActionRenamedOldName:
				if pending != "" {
					w.send(Event{Type: EventMovedOut, Path: pending})
				}
				pending = path
			case fileActionRenamedNewName:
				if pending != "" {
					w.send(Event{Type: EventRenamed, Path: path, OldPath: pending})
					pending = ""
				} else {
					w.send(Event{Type: EventMovedIn, Path: path})
				}
			}
		}

		if nextOffset == 0 {
			break
		}
		buf = buf[nextOffset:]
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
	if w.handle != 0 {
		// unblock the pending ReadDirectoryChanges
		_ = windows.CancelIoEx(w.handle, nil)
		windows.CloseHandle(w.handle)
	}
	w.wg.Wait()
	close(w.eventCh)
	return nil
}
