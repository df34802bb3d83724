// Package watcher delivers typed change events for the direct children of
// one folder. Events for the sidecar settings file are never delivered.
package watcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lumipallolabs/metafolder/internal/settings"
)

// EventType represents the type of filesystem event
type EventType int

const (
	EventCreated EventType = iota
	EventDeleted
	EventRenamed
	EventMoved
	EventMovedIn
	EventMovedOut
)

// String returns a human-readable event type
func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDeleted:
		return "deleted"
	case EventRenamed:
		return "renamed"
	case EventMoved:
		return "moved"
	case EventMovedIn:
		return "moved-in"
	case EventMovedOut:
		return "moved-out"
	default:
		return "unknown"
	}
}

// Event represents a filesystem change event. OldPath is only set for
// EventRenamed.
type Event struct {
	Type    EventType
	Path    string
	OldPath string
}

// Name returns the base name of Path
func (e Event) Name() string {
	return filepath.Base(e.Path)
}

// OldName returns the base name of OldPath
func (e Event) OldName() string {
	if e.OldPath == "" {
		return ""
	}
	return filepath.Base(e.OldPath)
}

// DefaultRenameWindow is how long a rename-away waits for the matching
// arrival before it is reported as a move out
const DefaultRenameWindow = 50 * time.Millisecond

// Option configures a Watcher
type Option func(*options)

type options struct {
	renameWindow time.Duration
}

// WithRenameWindow sets the rename pairing window
func WithRenameWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.renameWindow = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{renameWindow: DefaultRenameWindow}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ignored reports whether changes to path must not be delivered
func ignored(path string) bool {
	return filepath.Base(path) == settings.FileName
}

// inFolder reports whether path is a direct child of root
func inFolder(root, path string) bool {
	return filepath.Dir(path) == root
}

// filter drops events the consumer must never see
func filter(ev Event) bool {
	if ignored(ev.Path) {
		return false
	}
	if ev.Type == EventRenamed && ignored(ev.OldPath) {
		return false
	}
	return true
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
