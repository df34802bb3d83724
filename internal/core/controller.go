package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/lumipallolabs/metafolder/internal/config"
	"github.com/lumipallolabs/metafolder/internal/entries"
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/presets"
	"github.com/lumipallolabs/metafolder/internal/recent"
	"github.com/lumipallolabs/metafolder/internal/settings"
	"github.com/lumipallolabs/metafolder/internal/watcher"
)

// ChangeFeed is a running subscription to one folder's changes
type ChangeFeed interface {
	Events() <-chan watcher.Event
	Stop() error
}

// WatchFunc subscribes to the changes of folder
type WatchFunc func(folder string) (ChangeFeed, error)

// EnumerateFunc lists the visible entries of folder
type EnumerateFunc func(ctx context.Context, folder string) ([]model.Entry, error)

// Controller owns the open folder view and everything attached to it:
// the change subscription, navigation history and external opening.
// All view access goes through its lock, so watcher events and user
// actions never interleave inside an operation.
type Controller struct {
	mu sync.RWMutex

	cfg   config.Config
	view  *FolderView
	feed  ChangeFeed
	gen   int
	store Store
	surf  Renderer

	watch     WatchFunc
	enumerate EnumerateFunc
	open      func(path string) error
	recent    *recent.Manager

	eventCh chan Event
}

// Option configures a Controller
type Option func(*Controller)

// WithStore replaces the sidecar store
func WithStore(s Store) Option {
	return func(c *Controller) { c.store = s }
}

// WithWatch replaces how folders are subscribed to
func WithWatch(fn WatchFunc) Option {
	return func(c *Controller) { c.watch = fn }
}

// WithEnumerate replaces how folders are listed
func WithEnumerate(fn EnumerateFunc) Option {
	return func(c *Controller) { c.enumerate = fn }
}

// WithOpener replaces how files are handed to other applications
func WithOpener(fn func(path string) error) Option {
	return func(c *Controller) { c.open = fn }
}

// WithRecent records visited folders in m
func WithRecent(m *recent.Manager) Option {
	return func(c *Controller) { c.recent = m }
}

// NewController creates a controller drawing on surf
func NewController(cfg config.Config, surf Renderer, opener func(string) error, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		surf:      surf,
		store:     settings.NewStore(),
		enumerate: entries.Enumerate,
		open:      opener,
		eventCh:   make(chan Event, 100),
	}
	c.watch = c.watchFolder
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// watchFolder is the default WatchFunc
func (c *Controller) watchFolder(folder string) (ChangeFeed, error) {
	w, err := watcher.New(watcher.WithRenameWindow(time.Duration(c.cfg.RenameWindowMs) * time.Millisecond))
	if err != nil {
		return nil, err
	}
	if err := w.Add(folder); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.Start()
	return w, nil
}

// Events returns the channel of background state changes
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// State returns a read-only snapshot of the open folder
func (c *Controller) State() ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshot(c.view)
}

// Path returns the open folder, or "" when none is open
func (c *Controller) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.view == nil {
		return ""
	}
	return c.view.Path()
}

// Open shows folder, replacing the current view. The old change feed is
// stopped before the new one starts. If the new folder cannot be
// watched it is still shown, read-only, and an ErrReadOnly error is
// returned.
func (c *Controller) Open(ctx context.Context, folder string) error {
	path, err := homedir.Expand(folder)
	if err != nil {
		return err
	}
	if path, err = filepath.Abs(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	listing, err := c.enumerate(ctx, path)
	if err != nil {
		return fmt.Errorf("list %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	view, err := NewFolderView(path, listing, c.store, c.surf, c.cfg)
	if err != nil {
		return err
	}

	c.unsubscribeLocked()
	c.view = view
	view.Draw()
	logging.Core.Debugf("opened %s with %d items", path, view.items.Len())

	if c.recent != nil {
		c.recent.Visit(path)
	}

	feed, werr := c.watch(path)
	if werr != nil {
		logging.Watch.Errorf("cannot watch %s: %v", path, werr)
		view.setReadOnly(true)
		c.emit(FolderOpenedEvent{Path: path, ReadOnly: true})
		return fmt.Errorf("%w: watch %s: %v", ErrReadOnly, path, werr)
	}

	c.feed = feed
	go c.watchLoop(feed, c.gen)

	c.emit(FolderOpenedEvent{Path: path})
	return nil
}

// unsubscribeLocked stops the current change feed. Caller must hold the
// lock. Bumping the generation makes a loop still draining the old feed
// discard what it reads.
func (c *Controller) unsubscribeLocked() {
	c.gen++
	if c.feed != nil {
		if err := c.feed.Stop(); err != nil {
			logging.Watch.Warnf("stopping watcher: %v", err)
		}
		c.feed = nil
	}
}

// watchLoop applies changes from feed while gen is current
func (c *Controller) watchLoop(feed ChangeFeed, gen int) {
	for ev := range feed.Events() {
		c.mu.Lock()
		if gen != c.gen || c.view == nil {
			c.mu.Unlock()
			logging.Watch.Debugf("discarding stale %s %s", ev.Type, ev.Path)
			continue
		}
		err := c.view.HandleChange(ev)
		c.mu.Unlock()

		if err != nil {
			c.emit(PersistFailedEvent{Err: err})
		}
		c.emit(ChangeAppliedEvent{Change: ev})
	}

	c.mu.RLock()
	lost := gen == c.gen && c.view != nil
	c.mu.RUnlock()
	if lost {
		c.handleWatchLost(gen)
	}
}

// handleWatchLost catches up with changes the dead feed may have missed
// and leaves the view read-only
func (c *Controller) handleWatchLost(gen int) {
	path := c.Path()
	logging.Watch.Warnf("change feed for %s ended", path)

	listing, err := c.enumerate(context.Background(), path)

	c.mu.Lock()
	if gen != c.gen || c.view == nil {
		c.mu.Unlock()
		return
	}
	c.feed = nil
	if err == nil {
		err = c.view.Rescan(listing)
	}
	c.view.setReadOnly(true)
	c.mu.Unlock()

	if err != nil {
		c.emit(ErrorEvent{Err: err})
	}
	c.emit(WatchLostEvent{Path: path})
}

// Up opens the parent of the current folder
func (c *Controller) Up(ctx context.Context) error {
	path := c.Path()
	if path == "" {
		return ErrNoFolder
	}
	parent := filepath.Dir(path)
	if parent == path {
		return nil
	}
	return c.Open(ctx, parent)
}

// Activate navigates into a folder item or opens a file item
func (c *Controller) Activate(ctx context.Context, name string) error {
	c.mu.RLock()
	if c.view == nil {
		c.mu.RUnlock()
		return ErrNoFolder
	}
	action, path, err := c.view.Activate(name)
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	if action == ActivateNavigate {
		return c.Open(ctx, path)
	}
	if c.open == nil {
		return fmt.Errorf("no application to open %s", path)
	}
	return c.open(path)
}

// Rescan re-lists the open folder and reconciles the view with it
func (c *Controller) Rescan(ctx context.Context) error {
	path := c.Path()
	if path == "" {
		return ErrNoFolder
	}
	listing, err := c.enumerate(ctx, path)
	if err != nil {
		return err
	}
	return c.withView(func(v *FolderView) error {
		if v.Path() != path {
			return nil
		}
		return v.Rescan(listing)
	})
}

// withView runs fn on the open view under the lock
func (c *Controller) withView(fn func(v *FolderView) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return ErrNoFolder
	}
	return fn(c.view)
}

// BeginDrag starts dragging name
func (c *Controller) BeginDrag(name string, pointer model.Point) (DragPayload, error) {
	var p DragPayload
	err := c.withView(func(v *FolderView) error {
		var err error
		p, err = v.BeginDrag(name, pointer)
		return err
	})
	return p, err
}

// Drop finishes a drag at target
func (c *Controller) Drop(p DragPayload, target model.Point) (bool, error) {
	var moved bool
	err := c.withView(func(v *FolderView) error {
		var err error
		moved, err = v.Drop(p, target)
		return err
	})
	return moved, err
}

// SetDrilldown sets the drilldown mode of the open folder
func (c *Controller) SetDrilldown(on bool) error {
	return c.withView(func(v *FolderView) error { return v.SetDrilldown(on) })
}

// SetBackgroundColor sets the background of the open folder
func (c *Controller) SetBackgroundColor(color string) error {
	return c.withView(func(v *FolderView) error { return v.SetBackgroundColor(color) })
}

// SetFontColor sets the label color of the open folder
func (c *Controller) SetFontColor(color string) error {
	return c.withView(func(v *FolderView) error { return v.SetFontColor(color) })
}

// SetFontSize sets the label size of the open folder
func (c *Controller) SetFontSize(size string) error {
	return c.withView(func(v *FolderView) error { return v.SetFontSize(size) })
}

// SetFontBold sets the label weight of the open folder
func (c *Controller) SetFontBold(bold bool) error {
	return c.withView(func(v *FolderView) error { return v.SetFontBold(bold) })
}

// SetCellSize sets the cell size of the open folder
func (c *Controller) SetCellSize(size int) error {
	return c.withView(func(v *FolderView) error { return v.SetCellSize(size) })
}

// Find marks matching items and returns the count
func (c *Controller) Find(substr string) int {
	var n int
	_ = c.withView(func(v *FolderView) error {
		n = v.Find(substr)
		return nil
	})
	return n
}

// ClearFound removes find marks
func (c *Controller) ClearFound() {
	_ = c.withView(func(v *FolderView) error {
		v.ClearFound()
		return nil
	})
}

// ZoomPreview rescales the open folder without saving
func (c *Controller) ZoomPreview(zx, zy int) bool {
	var changed bool
	_ = c.withView(func(v *FolderView) error {
		changed = v.ZoomPreview(zx, zy)
		return nil
	})
	return changed
}

// ZoomCommit keeps the previewed zoom
func (c *Controller) ZoomCommit() error {
	return c.withView(func(v *FolderView) error { return v.ZoomCommit() })
}

// ZoomCancel reverts the previewed zoom
func (c *Controller) ZoomCancel() error {
	return c.withView(func(v *FolderView) error { return v.ZoomCancel() })
}

// ApplyPreset sets every cosmetic the preset carries, one setter at a time
func (c *Controller) ApplyPreset(p presets.Preset) error {
	return c.withView(func(v *FolderView) error {
		if p.BackgroundColor != "" {
			if err := v.SetBackgroundColor(p.BackgroundColor); err != nil {
				return err
			}
		}
		if p.FontColor != "" {
			if err := v.SetFontColor(p.FontColor); err != nil {
				return err
			}
		}
		if p.FontSize != "" {
			if err := v.SetFontSize(p.FontSize); err != nil {
				return err
			}
		}
		if p.FontBold != nil {
			if err := v.SetFontBold(*p.FontBold); err != nil {
				return err
			}
		}
		if p.CellSize > 0 {
			if err := v.SetCellSize(p.CellSize); err != nil {
				return err
			}
		}
		return nil
	})
}

// CapturePreset returns the cosmetics of the open folder under name
func (c *Controller) CapturePreset(name string) (presets.Preset, error) {
	var p presets.Preset
	err := c.withView(func(v *FolderView) error {
		cos := v.Cosmetics()
		p = presets.Preset{
			Name:            name,
			BackgroundColor: cos.BackgroundColor,
			FontColor:       cos.FontColor,
			FontSize:        cos.FontSize,
			FontBold:        settings.Bool(cos.FontBold),
			CellSize:        cos.CellSize,
		}
		return nil
	})
	return p, err
}

// Stop cleans up resources
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unsubscribeLocked()
	if c.recent != nil {
		if err := c.recent.Close(); err != nil {
			logging.Core.Warnf("saving history: %v", err)
		}
	}
}

// emit sends an event without blocking
func (c *Controller) emit(event Event) {
	select {
	case c.eventCh <- event:
	default:
		logging.Core.Debugf("event channel full, dropping %T", event)
	}
}
