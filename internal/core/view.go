package core

import (
	"errors"
	"fmt"

	"github.com/lumipallolabs/metafolder/internal/config"
	"github.com/lumipallolabs/metafolder/internal/layout"
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/reconcile"
	"github.com/lumipallolabs/metafolder/internal/settings"
	"github.com/lumipallolabs/metafolder/internal/style"
	"github.com/lumipallolabs/metafolder/internal/watcher"
	"github.com/lumipallolabs/metafolder/internal/zoom"
)

var (
	// ErrReadOnly is returned when a view without change monitoring is
	// asked to persist something
	ErrReadOnly = errors.New("folder is open read-only")

	// ErrNoFolder is returned when no folder is open
	ErrNoFolder = errors.New("no folder open")

	// ErrNotDirectory is returned when opening something that is not a folder
	ErrNotDirectory = errors.New("not a directory")

	// ErrUnknownItem is returned for a name that is not on the canvas
	ErrUnknownItem = errors.New("no such item")
)

// Renderer is the rendering collaborator a folder view draws on
type Renderer interface {
	reconcile.Renderer
	Clear()
	SetCellSize(size int)
}

// Store loads and updates sidecar files
type Store interface {
	Load(folder string) (settings.Layout, error)
	Update(folder string, mutate func(*settings.Layout)) error
}

// Cosmetics are the resolved look of a folder: its overrides, or the
// global defaults where it has none
type Cosmetics struct {
	BackgroundColor string
	FontColor       string
	FontSize        string
	FontBold        bool
	CellSize        int
}

// Activation tells the caller what activating an item means
type Activation int

const (
	// ActivateNavigate opens the folder in place
	ActivateNavigate Activation = iota
	// ActivateOpen hands the path to the default application
	ActivateOpen
)

// FolderView is the state of one open folder. It is not safe for
// concurrent use; the Controller serializes access.
type FolderView struct {
	path      string
	items     *model.Registry
	overrides settings.Layout
	defaults  config.Config
	readOnly  bool

	store  Store
	surf   Renderer
	placer *layout.Engine
	zoom   *zoom.Transform
	recon  *reconcile.Engine
}

// viewStore routes zoom and reconcile writes through the view
type viewStore struct {
	v *FolderView
}

func (s viewStore) Update(_ string, mutate func(*settings.Layout)) error {
	return s.v.persist(mutate)
}

// NewFolderView loads the sidecar of path and places listing. Nothing is
// drawn until Draw is called, so a failed load leaves the surface alone.
func NewFolderView(path string, listing []model.Entry, store Store, surf Renderer, defaults config.Config) (*FolderView, error) {
	stored, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings for %s: %w", path, err)
	}

	v := &FolderView{
		path:     path,
		defaults: defaults,
		store:    store,
		surf:     surf,
		placer:   layout.New(surf),
	}

	cellSize := v.resolveCellSize(stored.CellSize)
	v.items = layout.PlaceUnpositioned(listing, defaults.DesktopWidth, cellSize, stored.Icons)

	v.overrides = stored.Clone()
	v.overrides.Icons = nil

	vs := viewStore{v: v}
	v.zoom = zoom.New(vs, path)
	v.recon = reconcile.New(reconcile.Config{
		Folder:       path,
		Items:        v.items,
		Surface:      surf,
		Store:        vs,
		Zoom:         v.zoom,
		CellSize:     cellSize,
		DesktopWidth: defaults.DesktopWidth,
	})
	return v, nil
}

// Draw puts every item on a cleared surface, then re-enters a zoom
// session stored with the folder
func (v *FolderView) Draw() {
	v.surf.Clear()
	v.surf.SetCellSize(v.Cosmetics().CellSize)

	for _, item := range v.items.Items() {
		v.surf.Render(item, item.Position)
	}

	if v.overrides.Zoom && v.overrides.ZoomX > 0 && v.overrides.ZoomY > 0 {
		logging.Core.Debugf("restoring zoom %d%%x%d%% in %s", v.overrides.ZoomX, v.overrides.ZoomY, v.path)
		v.zoom.Restore(v.items, v.surf, v.overrides.ZoomX, v.overrides.ZoomY)
	}
}

// Path returns the folder this view shows
func (v *FolderView) Path() string {
	return v.path
}

// Items returns the item registry
func (v *FolderView) Items() *model.Registry {
	return v.items
}

// ReadOnly reports whether the view runs without change monitoring
func (v *FolderView) ReadOnly() bool {
	return v.readOnly
}

func (v *FolderView) setReadOnly(ro bool) {
	v.readOnly = ro
}

// Drilldown reports whether activating a folder opens it in place
func (v *FolderView) Drilldown() bool {
	return v.overrides.Drilldown
}

// Zoom returns the zoom state
func (v *FolderView) Zoom() zoom.State {
	return v.zoom.State()
}

// Overrides returns a copy of the folder-specific cosmetic settings
func (v *FolderView) Overrides() settings.Layout {
	return v.overrides.Clone()
}

// Cosmetics resolves overrides against the global defaults
func (v *FolderView) Cosmetics() Cosmetics {
	c := Cosmetics{
		BackgroundColor: v.overrides.BackgroundColor,
		FontColor:       v.overrides.FontColor,
		FontSize:        v.overrides.FontSize,
		FontBold:        v.defaults.FontBold,
		CellSize:        v.resolveCellSize(v.overrides.CellSize),
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = v.defaults.BackgroundColor
	}
	if c.FontColor == "" {
		c.FontColor = v.defaults.FontColor
	}
	if c.FontSize == "" {
		c.FontSize = v.defaults.FontSize
	}
	if v.overrides.FontBold != nil {
		c.FontBold = *v.overrides.FontBold
	}
	return c
}

func (v *FolderView) resolveCellSize(override int) int {
	if override > 0 {
		return override
	}
	if v.defaults.CellSize > 0 {
		return v.defaults.CellSize
	}
	return style.DefaultCellSize
}

// persist writes one change through the store. In-memory state is never
// rolled back here.
func (v *FolderView) persist(mutate func(*settings.Layout)) error {
	if v.readOnly {
		return ErrReadOnly
	}
	if err := v.store.Update(v.path, mutate); err != nil {
		logging.Store.Errorf("failed to save settings for %s: %v", v.path, err)
		return err
	}
	return nil
}

// BeginDrag captures the bounds of name in canvas coordinates. pointer
// is where the gesture started.
func (v *FolderView) BeginDrag(name string, pointer model.Point) (DragPayload, error) {
	bounds, ok := v.surf.QueryBounds(name)
	if !ok {
		return DragPayload{}, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	return DragPayload{
		Name:     name,
		W:        bounds.W,
		H:        bounds.H,
		PosX:     bounds.X,
		PosY:     bounds.Y,
		GrabbedX: pointer.X - bounds.X,
		GrabbedY: pointer.Y - bounds.Y,
	}, nil
}

// Drop places the dragged item with the pointer released at target. It
// reports false when the spot is taken or the item is gone; the item then
// stays where it was. Positions of every deliberately placed item are
// persisted and the item only moves once that succeeds.
func (v *FolderView) Drop(p DragPayload, target model.Point) (bool, error) {
	item, ok := v.items.Get(p.Name)
	if !ok {
		logging.Core.Debugf("drop: %q not on canvas", p.Name)
		return false, nil
	}

	pos := model.Point{X: target.X - p.GrabbedX, Y: target.Y - p.GrabbedY}
	size := model.Size{W: p.W, H: p.H}
	if size.W <= 0 || size.H <= 0 {
		cs := float64(v.Cosmetics().CellSize)
		size = model.Size{W: cs, H: cs}
	}

	if v.placer.Collides(p.Name, model.RectAt(pos, size)) {
		logging.Core.Debugf("drop of %q at (%.0f,%.0f) rejected", p.Name, pos.X, pos.Y)
		return false, nil
	}

	wasNew := item.NewlyAdded
	item.NewlyAdded = false

	logical := v.zoom.Logical(pos)
	icons := v.scanPositions(p.Name, logical)
	err := v.persist(func(l *settings.Layout) {
		l.Icons = icons
	})
	if err != nil {
		item.NewlyAdded = wasNew
		return false, err
	}

	item.Position = logical
	v.surf.Render(item, pos)
	logging.Core.Debugf("dropped %q at (%.0f,%.0f)", p.Name, pos.X, pos.Y)
	return true, nil
}

// scanPositions collects the logical position of every item the user has
// placed. dropped is recorded at its new position.
func (v *FolderView) scanPositions(dropped string, at model.Point) map[string]settings.Icon {
	icons := make(map[string]settings.Icon, v.items.Len())
	for _, item := range v.items.Items() {
		if item.NewlyAdded {
			continue
		}
		pos := item.Position
		if item.Name() == dropped {
			pos = at
		} else if r, ok := v.surf.QueryBounds(item.Name()); ok {
			pos = v.zoom.Logical(r.Origin())
		}
		icons[item.Name()] = settings.Icon{PositionX: model.Round(pos.X), PositionY: model.Round(pos.Y)}
	}
	return icons
}

// SetDrilldown switches between navigating into folders and opening them
func (v *FolderView) SetDrilldown(on bool) error {
	v.overrides.Drilldown = on
	return v.persist(func(l *settings.Layout) {
		l.Drilldown = on
	})
}

// SetBackgroundColor sets the folder background in any notation ParseColor
// accepts; it is stored as rgba()
func (v *FolderView) SetBackgroundColor(color string) error {
	norm, err := style.Normalize(color)
	if err != nil {
		return err
	}
	v.overrides.BackgroundColor = norm
	return v.persist(func(l *settings.Layout) {
		l.BackgroundColor = norm
	})
}

// SetFontColor sets the label color
func (v *FolderView) SetFontColor(color string) error {
	norm, err := style.Normalize(color)
	if err != nil {
		return err
	}
	v.overrides.FontColor = norm
	return v.persist(func(l *settings.Layout) {
		l.FontColor = norm
	})
}

// SetFontSize sets the label size name
func (v *FolderView) SetFontSize(size string) error {
	v.overrides.FontSize = size
	return v.persist(func(l *settings.Layout) {
		l.FontSize = size
	})
}

// SetFontBold sets label weight
func (v *FolderView) SetFontBold(bold bool) error {
	v.overrides.FontBold = settings.Bool(bold)
	return v.persist(func(l *settings.Layout) {
		l.FontBold = settings.Bool(bold)
	})
}

// SetCellSize resizes every cell
func (v *FolderView) SetCellSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("cell size must be positive, got %d", size)
	}
	v.overrides.CellSize = size
	v.surf.SetCellSize(size)
	v.recon.SetCellSize(size)
	return v.persist(func(l *settings.Layout) {
		l.CellSize = size
	})
}

// Find marks items whose name contains substr, ignoring case, and
// returns how many matched
func (v *FolderView) Find(substr string) int {
	return v.items.MarkFound(substr)
}

// ClearFound drops the marks left by Find
func (v *FolderView) ClearFound() {
	v.items.ClearFound()
}

// ZoomPreview rescales the view without persisting
func (v *FolderView) ZoomPreview(zx, zy int) bool {
	return v.zoom.Preview(v.items, v.surf, zx, zy)
}

// ZoomCommit keeps the previewed positions
func (v *FolderView) ZoomCommit() error {
	err := v.zoom.Commit(v.items, v.surf)
	v.overrides.Zoom, v.overrides.ZoomX, v.overrides.ZoomY = false, 0, 0
	return err
}

// ZoomCancel restores the positions from before the preview
func (v *FolderView) ZoomCancel() error {
	err := v.zoom.Cancel(v.items, v.surf)
	v.overrides.Zoom, v.overrides.ZoomX, v.overrides.ZoomY = false, 0, 0
	return err
}

// HandleChange applies one filesystem change
func (v *FolderView) HandleChange(ev watcher.Event) error {
	return v.recon.Apply(ev)
}

// Rescan reconciles the view with a fresh listing
func (v *FolderView) Rescan(listing []model.Entry) error {
	return v.recon.Rescan(listing)
}

// Activate decides what activating name means under the drilldown mode
func (v *FolderView) Activate(name string) (Activation, string, error) {
	item, ok := v.items.Get(name)
	if !ok {
		return ActivateOpen, "", fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	if item.IsDir && v.overrides.Drilldown {
		return ActivateNavigate, item.Path, nil
	}
	return ActivateOpen, item.Path, nil
}
