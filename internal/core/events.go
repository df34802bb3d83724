package core

import "github.com/lumipallolabs/metafolder/internal/watcher"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// FolderOpenedEvent is emitted when a folder view replaces the previous one
type FolderOpenedEvent struct {
	Path     string
	ReadOnly bool
}

func (FolderOpenedEvent) isEvent() {}

// ChangeAppliedEvent is emitted after a filesystem change reached the view
type ChangeAppliedEvent struct {
	Change watcher.Event
}

func (ChangeAppliedEvent) isEvent() {}

// PersistFailedEvent is emitted when a background change could not be
// written to the sidecar. The view keeps the change.
type PersistFailedEvent struct {
	Err error
}

func (PersistFailedEvent) isEvent() {}

// WatchLostEvent is emitted when the change feed of the open folder ends
// on its own. The view is rescanned and continues read-only.
type WatchLostEvent struct {
	Path string
}

func (WatchLostEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
