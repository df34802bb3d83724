package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/metafolder/internal/canvas"
	"github.com/lumipallolabs/metafolder/internal/core"
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/presets"
	"github.com/lumipallolabs/metafolder/internal/style"
	"github.com/lumipallolabs/metafolder/internal/zoom"
)

// Layout constants
const (
	headerHeight = 2
	footerHeight = 2 // status line + help bar
	zoomStep     = 10
	minZoom      = 10
	maxZoom      = 200
)

// folderOpenedMsg is sent when opening, going up or activating finishes
type folderOpenedMsg struct {
	err error
}

// controllerEventMsg wraps an event from the controller
type controllerEventMsg struct {
	event core.Event
}

// rescanDoneMsg is sent when a manual rescan finishes
type rescanDoneMsg struct {
	err error
}

// dragState tracks a drag in progress, by mouse or keyboard
type dragState struct {
	payload core.DragPayload
	pointer model.Point
}

// ghost returns where the dragged cell would land
func (d dragState) ghost() model.Rect {
	return model.Rect{
		X: d.pointer.X - d.payload.GrabbedX,
		Y: d.pointer.Y - d.payload.GrabbedY,
		W: d.payload.W,
		H: d.payload.H,
	}
}

// App is the main application model
type App struct {
	ctrl    *core.Controller
	surf    *canvas.Canvas
	presets *presets.Store
	keys    KeyMap

	header  Header
	helpBar help.Model
	help    HelpOverlay
	picker  PresetPicker
	find    textinput.Model
	finding bool

	start    string
	state    core.ViewState
	selected string
	drag     *dragState
	vp       viewport

	notice string
	err    error

	width  int
	height int
}

// NewApp creates the application model. store may be nil, which
// disables presets.
func NewApp(ctrl *core.Controller, surf *canvas.Canvas, store *presets.Store, start, version string) App {
	keys := DefaultKeyMap()

	find := textinput.New()
	find.Prompt = "/"
	find.Placeholder = "find by name"
	find.CharLimit = 255

	return App{
		ctrl:    ctrl,
		surf:    surf,
		presets: store,
		keys:    keys,
		header:  NewHeader(version),
		helpBar: newHelpBar(),
		help:    NewHelpOverlay(keys, version),
		picker:  NewPresetPicker(),
		find:    find,
		start:   start,
	}
}

// Init initializes the application
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("metafolder"),
		a.openFolder(a.start),
		a.listenForEvents(),
	)
}

func (a App) openFolder(path string) tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		return folderOpenedMsg{err: ctrl.Open(context.Background(), path)}
	}
}

// listenForEvents returns a command that waits for the next controller event
func (a App) listenForEvents() tea.Cmd {
	ch := a.ctrl.Events()
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return controllerEventMsg{event: event}
	}
}

// Update handles messages
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case folderOpenedMsg:
		a.refresh()
		a.reportOpen(msg.err)
		return a, nil

	case rescanDoneMsg:
		a.refresh()
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.notice = "rescanned"
		}
		return a, nil

	case controllerEventMsg:
		a.handleEvent(msg.event)
		return a, a.listenForEvents()
	}

	return a, nil
}

// reportOpen turns the result of a navigation into a notice or an error
func (a *App) reportOpen(err error) {
	switch {
	case err == nil:
		a.err = nil
	case errors.Is(err, core.ErrReadOnly):
		a.err = nil
		a.notice = "changes on disk are not tracked here; the view is read-only"
	default:
		a.err = err
	}
}

func (a *App) handleEvent(event core.Event) {
	switch e := event.(type) {
	case core.FolderOpenedEvent:
		logging.UI.Debugf("folder opened: %s", e.Path)
		a.selected = ""
		a.drag = nil
		a.finding = false
		a.vp.originX, a.vp.originY = 0, 0
		a.notice = ""
	case core.ChangeAppliedEvent:
		logging.UI.Debugf("change applied: %s %s", e.Change.Type, e.Change.Path)
	case core.PersistFailedEvent:
		a.err = e.Err
	case core.WatchLostEvent:
		a.notice = "lost track of " + e.Path + "; the view is read-only"
	case core.ErrorEvent:
		a.err = e.Err
	}
	a.refresh()
}

// refresh takes a fresh snapshot from the controller
func (a *App) refresh() {
	a.state = a.ctrl.State()
	if a.selected != "" {
		if _, ok := a.state.Item(a.selected); !ok {
			a.selected = ""
		}
	}
	if a.drag != nil {
		if _, ok := a.state.Item(a.drag.payload.Name); !ok {
			a.drag = nil
		}
	}
	a.header.SetState(a.state)
}

func (a *App) updateLayout() {
	a.vp.cols = max(a.width, 0)
	a.vp.rows = max(a.height-headerHeight-footerHeight, 1)
	a.header.SetWidth(a.width)
	a.helpBar.Width = a.width
	a.find.Width = max(a.width-4, 10)
}

// zoomLevel returns the current zoom percentage
func (a App) zoomLevel() int {
	if a.state.Zoom.X > 0 {
		return a.state.Zoom.X
	}
	return zoom.Baseline
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Cancel) {
			a.help.SetVisible(false)
		}
		return a, nil
	}

	if a.picker.IsVisible() {
		return a.handlePickerKey(msg)
	}

	if a.finding {
		return a.handleFindKey(msg)
	}

	if a.drag != nil {
		return a.handleDragKey(msg)
	}

	a.notice = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Stop()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(0, -1)
	case key.Matches(msg, a.keys.Down):
		a.moveSelection(0, 1)
	case key.Matches(msg, a.keys.Left):
		a.moveSelection(-1, 0)
	case key.Matches(msg, a.keys.Right):
		a.moveSelection(1, 0)

	case key.Matches(msg, a.keys.Enter):
		if a.selected == "" {
			return a, nil
		}
		name, ctrl := a.selected, a.ctrl
		return a, func() tea.Msg {
			return folderOpenedMsg{err: ctrl.Activate(context.Background(), name)}
		}

	case key.Matches(msg, a.keys.Back):
		ctrl := a.ctrl
		return a, func() tea.Msg {
			return folderOpenedMsg{err: ctrl.Up(context.Background())}
		}

	case key.Matches(msg, a.keys.Pick):
		a.startKeyboardDrag()

	case key.Matches(msg, a.keys.Cancel):
		a.ctrl.ClearFound()
		a.selected = ""

	case key.Matches(msg, a.keys.ZoomIn):
		z := min(a.zoomLevel()+zoomStep, maxZoom)
		a.ctrl.ZoomPreview(z, z)
	case key.Matches(msg, a.keys.ZoomOut):
		z := max(a.zoomLevel()-zoomStep, minZoom)
		a.ctrl.ZoomPreview(z, z)
	case key.Matches(msg, a.keys.ZoomCommit):
		a.setErr(a.ctrl.ZoomCommit())
	case key.Matches(msg, a.keys.ZoomCancel):
		a.setErr(a.ctrl.ZoomCancel())

	case key.Matches(msg, a.keys.Drilldown):
		a.setErr(a.ctrl.SetDrilldown(!a.state.Drilldown))
	case key.Matches(msg, a.keys.Background):
		a.setErr(a.ctrl.SetBackgroundColor(style.NextInPalette(a.state.Cosmetics.BackgroundColor)))
	case key.Matches(msg, a.keys.FontBigger):
		a.setErr(a.ctrl.SetFontSize(style.StepFontSize(a.state.Cosmetics.FontSize, 1)))
	case key.Matches(msg, a.keys.FontSmaller):
		a.setErr(a.ctrl.SetFontSize(style.StepFontSize(a.state.Cosmetics.FontSize, -1)))
	case key.Matches(msg, a.keys.Bold):
		a.setErr(a.ctrl.SetFontBold(!a.state.Cosmetics.FontBold))
	case key.Matches(msg, a.keys.CellBigger):
		a.setErr(a.ctrl.SetCellSize(style.StepCellSize(a.state.Cosmetics.CellSize, 1)))
	case key.Matches(msg, a.keys.CellSmaller):
		a.setErr(a.ctrl.SetCellSize(style.StepCellSize(a.state.Cosmetics.CellSize, -1)))

	case key.Matches(msg, a.keys.Find):
		a.finding = true
		a.find.SetValue("")
		a.find.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Rescan):
		ctrl := a.ctrl
		return a, func() tea.Msg {
			return rescanDoneMsg{err: ctrl.Rescan(context.Background())}
		}

	case key.Matches(msg, a.keys.Presets):
		if a.presets == nil {
			a.notice = "presets are unavailable"
			return a, nil
		}
		a.picker.Open(a.presets.List())
	}

	a.refresh()
	return a, nil
}

// setErr shows err, or clears the last error when an action succeeded
func (a *App) setErr(err error) {
	a.err = err
}

func (a App) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.finding = false
		a.find.Blur()
		a.notice = fmt.Sprintf("%d found", a.state.Found)
		return a, nil
	case tea.KeyEsc:
		a.finding = false
		a.find.Blur()
		a.ctrl.ClearFound()
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.find, cmd = a.find.Update(msg)
	if a.find.Value() == "" {
		a.ctrl.ClearFound()
	} else {
		a.ctrl.Find(a.find.Value())
	}
	a.refresh()
	return a, cmd
}

func (a App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.picker.naming {
		switch msg.Type {
		case tea.KeyEnter:
			a.savePreset(a.picker.input.Value())
			a.picker.Open(a.presets.List())
			return a, nil
		case tea.KeyEsc:
			a.picker.naming = false
			a.picker.input.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.picker.input, cmd = a.picker.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.picker.Close()
	case key.Matches(msg, a.keys.Up):
		a.picker.Move(-1)
	case key.Matches(msg, a.keys.Down):
		a.picker.Move(1)
	case key.Matches(msg, a.keys.Enter):
		if name, ok := a.picker.Selected(); ok {
			a.applyPreset(name)
			a.picker.Close()
		}
	case msg.String() == "n":
		a.picker.StartNaming()
		return a, textinput.Blink
	case msg.String() == "x":
		if name, ok := a.picker.Selected(); ok {
			a.setErr(a.presets.Delete(name))
			a.picker.Open(a.presets.List())
		}
	}
	return a, nil
}

func (a *App) applyPreset(name string) {
	p, err := a.presets.Get(name)
	if err == nil {
		err = a.ctrl.ApplyPreset(p)
	}
	a.setErr(err)
	if err == nil {
		a.notice = "applied " + name
	}
	a.refresh()
}

func (a *App) savePreset(name string) {
	p, err := a.ctrl.CapturePreset(name)
	if err == nil {
		err = a.presets.Save(p)
	}
	a.setErr(err)
	if err == nil {
		a.notice = "saved " + name
	}
}

// moveSelection selects the nearest cell in a direction, or the top-left
// item when nothing is selected
func (a *App) moveSelection(dx, dy int) {
	cells := a.surf.Cells()
	if len(cells) == 0 || len(a.state.Items) == 0 {
		return
	}
	if a.selected == "" {
		items := make([]*model.CanvasItem, len(a.state.Items))
		for i := range a.state.Items {
			items[i] = &a.state.Items[i]
		}
		model.SortByPosition(items)
		a.selected = items[0].Name()
	} else if next, ok := nearestInDirection(cells, a.selected, dx, dy); ok {
		a.selected = next
	}
	if r, ok := a.surf.QueryBounds(a.selected); ok {
		a.vp.reveal(r)
	}
}

// startKeyboardDrag picks up the selected cell by its center
func (a *App) startKeyboardDrag() {
	if a.selected == "" {
		return
	}
	r, ok := a.surf.QueryBounds(a.selected)
	if !ok {
		return
	}
	a.beginDrag(a.selected, center(r))
}

func (a *App) beginDrag(name string, pointer model.Point) {
	payload, err := a.ctrl.BeginDrag(name, pointer)
	if err != nil {
		a.err = err
		return
	}
	a.drag = &dragState{payload: payload, pointer: pointer}
}

func (a App) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.drag = nil
	case key.Matches(msg, a.keys.Pick), key.Matches(msg, a.keys.Enter):
		a.finishDrag()
	case key.Matches(msg, a.keys.Up):
		a.drag.pointer.Y -= pxPerRow
	case key.Matches(msg, a.keys.Down):
		a.drag.pointer.Y += pxPerRow
	case key.Matches(msg, a.keys.Left):
		a.drag.pointer.X -= pxPerCol
	case key.Matches(msg, a.keys.Right):
		a.drag.pointer.X += pxPerCol
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Stop()
		return a, tea.Quit
	}
	if a.drag != nil {
		a.vp.reveal(a.drag.ghost())
	}
	return a, nil
}

// finishDrag drops the dragged cell where the pointer is
func (a *App) finishDrag() {
	d := a.drag
	a.drag = nil
	if d == nil {
		return
	}
	ok, err := a.ctrl.Drop(d.payload, d.pointer)
	switch {
	case err != nil:
		a.err = err
	case !ok:
		a.notice = "that spot is taken"
	default:
		a.err = nil
		a.selected = d.payload.Name
	}
	a.refresh()
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.help.IsVisible() || a.picker.IsVisible() || a.finding {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.vp.scroll(-1)
		return a, nil
	case tea.MouseButtonWheelDown:
		a.vp.scroll(1)
		a.vp.clamp(a.surf.Extent())
		return a, nil
	}

	row := msg.Y - headerHeight
	if row < 0 || row >= a.vp.rows {
		return a, nil
	}
	p := a.vp.toCanvas(msg.X, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		hit := a.surf.HitTest(p)
		if hit.Kind != model.HitItem {
			a.selected = ""
			return a, nil
		}
		a.selected = hit.Name
		a.beginDrag(hit.Name, p)
	case tea.MouseActionMotion:
		if a.drag != nil {
			a.drag.pointer = p
		}
	case tea.MouseActionRelease:
		if a.drag == nil {
			return a, nil
		}
		a.drag.pointer = p
		if a.drag.ghost().Origin() == a.drag.payload.Bounds().Origin() {
			// a click without movement
			a.drag = nil
			return a, nil
		}
		a.finishDrag()
	}
	return a, nil
}

// View renders the application
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var body string
	switch {
	case a.help.IsVisible():
		body = lipgloss.Place(a.width, a.vp.rows, lipgloss.Center, lipgloss.Center, a.help.View())
	case a.picker.IsVisible():
		body = lipgloss.Place(a.width, a.vp.rows, lipgloss.Center, lipgloss.Center, a.picker.View())
	case !a.state.Open():
		body = lipgloss.Place(a.width, a.vp.rows, lipgloss.Center, lipgloss.Center, LabelStyle.Render("Opening..."))
	default:
		body = a.renderCanvas()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		body,
		a.statusLine(),
		a.helpBar.View(a.keys),
	)
}

// renderCanvas paints the visible part of the canvas
func (a App) renderCanvas() string {
	s := newScreen(a.vp.cols, a.vp.rows)

	marks := cellMarks{
		selected: a.selected,
		fresh:    make(map[string]bool),
		found:    make(map[string]bool),
	}
	for _, item := range a.state.Items {
		if item.NewlyAdded {
			marks.fresh[item.Name()] = true
		}
		if item.Found {
			marks.found[item.Name()] = true
		}
	}

	cos := a.state.Cosmetics
	drawCells(s, a.vp, a.surf.Cells(), marks, style.FontScale(cos.FontSize))
	if a.drag != nil {
		drawGhost(s, a.vp, a.drag.ghost())
	}
	return s.render(newPalette(cos.BackgroundColor, cos.FontColor, cos.FontBold))
}

func (a App) statusLine() string {
	switch {
	case a.finding:
		return a.find.View()
	case a.err != nil:
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", a.err))
	case a.drag != nil:
		return NoticeStyle.Render("moving " + a.drag.payload.Name + " · space to drop · esc to cancel")
	case a.notice != "":
		return NoticeStyle.Render(a.notice)
	}
	return ""
}
