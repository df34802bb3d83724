// Package reconcile applies filesystem change events for the open folder
// to its item registry, the canvas and the sidecar.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/lumipallolabs/metafolder/internal/entries"
	"github.com/lumipallolabs/metafolder/internal/layout"
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/settings"
	"github.com/lumipallolabs/metafolder/internal/watcher"
	"github.com/lumipallolabs/metafolder/internal/zoom"
)

// Renderer is the part of the canvas the engine drives
type Renderer interface {
	layout.HitTester
	zoom.Surface
	Remove(name string)
	Rename(oldName, newName string)
}

// StatFunc describes a path that just appeared
type StatFunc func(path string) (model.Entry, error)

// Config wires an Engine to one folder view
type Config struct {
	Folder       string
	Items        *model.Registry
	Surface      Renderer
	Store        zoom.Updater
	Zoom         *zoom.Transform
	Stat         StatFunc
	CellSize     int
	DesktopWidth int
}

// Engine keeps a folder view in step with the filesystem
type Engine struct {
	folder       string
	items        *model.Registry
	surf         Renderer
	store        zoom.Updater
	zoom         *zoom.Transform
	placer       *layout.Engine
	stat         StatFunc
	cellSize     int
	desktopWidth int
}

// New creates an engine. A nil Stat uses entries.Stat.
func New(cfg Config) *Engine {
	stat := cfg.Stat
	if stat == nil {
		stat = entries.Stat
	}
	return &Engine{
		folder:       cfg.Folder,
		items:        cfg.Items,
		surf:         cfg.Surface,
		store:        cfg.Store,
		zoom:         cfg.Zoom,
		placer:       layout.New(cfg.Surface),
		stat:         stat,
		cellSize:     cfg.CellSize,
		desktopWidth: cfg.DesktopWidth,
	}
}

// SetCellSize changes the slot size used for new items
func (e *Engine) SetCellSize(size int) {
	e.cellSize = size
}

// Apply reconciles one event. Missing items are logged, not fatal.
// The returned error is a sidecar write failure; the in-memory change
// has been made regardless.
func (e *Engine) Apply(ev watcher.Event) error {
	switch ev.Type {
	case watcher.EventDeleted, watcher.EventMovedOut:
		return e.remove(ev.Name())

	case watcher.EventCreated, watcher.EventMovedIn:
		return e.add(ev.Path)

	case watcher.EventRenamed:
		return e.rename(ev)

	case watcher.EventMoved:
		logging.Core.Debugf("moved within folder: %s", ev.Path)
		return nil

	default:
		logging.Core.Warnf("unhandled change %s for %s", ev.Type, ev.Path)
		return nil
	}
}

func (e *Engine) remove(name string) error {
	if _, ok := e.items.Delete(name); ok {
		e.surf.Remove(name)
	} else {
		logging.Core.Debugf("remove: %q not on canvas", name)
	}

	// the sidecar may still hold a position for a name never drawn
	return e.persist(func(l *settings.Layout) {
		delete(l.Icons, name)
	})
}

func (e *Engine) add(path string) error {
	entry, err := e.stat(path)
	if err != nil {
		logging.Core.Debugf("dropping change for %s: %v", path, err)
		return nil
	}
	if entries.Hidden(entry.Name) {
		return nil
	}

	if item, ok := e.items.Get(entry.Name); ok {
		// already placed, refresh what it looks like
		item.Entry = entry
		e.surf.Render(item, e.zoom.Live(item.Position))
		return nil
	}

	slot := e.placer.FindFreeSlot(e.cellSize, e.desktopWidth)
	item := &model.CanvasItem{
		Entry:      entry,
		Position:   e.zoom.Logical(slot),
		NewlyAdded: true,
	}
	e.items.Put(item)
	e.surf.Render(item, slot)

	logging.Core.Debugf("added %q at (%.0f,%.0f)", entry.Name, slot.X, slot.Y)
	icon := settings.Icon{PositionX: model.Round(item.Position.X), PositionY: model.Round(item.Position.Y)}
	return e.persist(func(l *settings.Layout) {
		l.Icons[entry.Name] = icon
	})
}

func (e *Engine) rename(ev watcher.Event) error {
	oldName, newName := ev.OldName(), ev.Name()

	switch {
	case entries.Hidden(newName):
		return e.remove(oldName)
	case entries.Hidden(oldName):
		return e.add(ev.Path)
	case oldName == newName:
		return nil
	}

	if _, ok := e.items.Get(oldName); !ok {
		logging.Core.Debugf("rename: %q not on canvas", oldName)
		if _, known := e.items.Get(newName); !known {
			return e.add(ev.Path)
		}
		return nil
	}

	// renaming over an existing item replaces it
	if _, ok := e.items.Delete(newName); ok {
		e.surf.Remove(newName)
	}

	e.items.Rename(oldName, newName, ev.Path)
	e.surf.Rename(oldName, newName)
	logging.Core.Debugf("renamed %q to %q", oldName, newName)

	return e.persist(func(l *settings.Layout) {
		delete(l.Icons, newName)
		if icon, ok := l.Icons[oldName]; ok {
			delete(l.Icons, oldName)
			l.Icons[newName] = icon
		}
	})
}

// Rescan diffs a fresh listing against the registry: unknown entries are
// added like created files, missing ones removed like deleted files and
// the rest keep their position with refreshed metadata.
func (e *Engine) Rescan(listing []model.Entry) error {
	present := make(map[string]model.Entry, len(listing))
	for _, entry := range listing {
		present[entry.Name] = entry
	}

	var errs []error
	for _, name := range e.items.Names() {
		if _, ok := present[name]; !ok {
			if err := e.remove(name); err != nil {
				errs = append(errs, err)
			}
		}
	}

	added := 0
	for _, entry := range listing {
		if item, ok := e.items.Get(entry.Name); ok {
			item.Entry = entry
			continue
		}
		if err := e.add(entry.Path); err != nil {
			errs = append(errs, err)
		}
		added++
	}

	logging.Core.Debugf("rescan of %s: %d entries, %d added", e.folder, len(listing), added)
	return errors.Join(errs...)
}

func (e *Engine) persist(mutate func(*settings.Layout)) error {
	if err := e.store.Update(e.folder, mutate); err != nil {
		logging.Store.Errorf("failed to persist change in %s: %v", e.folder, err)
		return fmt.Errorf("persist change: %w", err)
	}
	return nil
}
