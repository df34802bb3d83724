package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/metafolder/internal/core"
)

// Header displays the open folder and its view settings (2 lines)
type Header struct {
	width   int
	version string
	state   core.ViewState
}

// NewHeader creates a new header component
func NewHeader(version string) Header {
	return Header{version: version}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// SetState updates what the header shows
func (h *Header) SetState(s core.ViewState) {
	h.state = s
}

// View renders the header
// Line 1: metafolder 0.1.0                          /home/me/Desktop
// Line 2: 12 items  zoom 100%  drilldown on  medium  60px   READ-ONLY
func (h Header) View() string {
	appName := NameStyle.Render("metafolder") + LabelStyle.Render(" "+h.version)

	path := h.state.Path
	if path == "" {
		path = "no folder"
	}
	maxPath := h.width - lipgloss.Width(appName) - 4
	if maxPath > 3 && len([]rune(path)) > maxPath {
		runes := []rune(path)
		path = "…" + string(runes[len(runes)-maxPath+1:])
	}
	line1 := spread(appName, ValueStyle.Render(path), h.width)

	s := h.state
	zoom := 100
	if s.Zoom.X > 0 {
		zoom = s.Zoom.X
	}
	drill := "off"
	if s.Drilldown {
		drill = "on"
	}

	parts := []string{
		field("items", fmt.Sprint(len(s.Items))),
		field("zoom", fmt.Sprintf("%d%%", zoom)),
		field("drilldown", drill),
		field("font", s.Cosmetics.FontSize),
		field("cell", fmt.Sprintf("%dpx", s.Cosmetics.CellSize)),
	}
	if s.Found > 0 {
		parts = append(parts, field("found", fmt.Sprint(s.Found)))
	}
	left := strings.Join(parts, "  ")

	var right string
	if s.ReadOnly {
		right = BadgeStyle.Render("READ-ONLY")
	}
	line2 := spread(left, right, h.width)

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

func field(label, value string) string {
	return LabelStyle.Render(label+" ") + ValueStyle.Render(value)
}

// spread puts left and right at opposite ends of a line
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
