package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 12 // Width for key column in help text

// HelpOverlay displays every keyboard shortcut in a centered box
type HelpOverlay struct {
	visible bool
	keys    KeyMap
	version string
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(keys KeyMap, version string) HelpOverlay {
	return HelpOverlay{keys: keys, version: version}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

var helpSections = []string{"MOVE", "OPEN & PLACE", "ZOOM", "LOOK", "OTHER"}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		MarginTop(1)

	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	var content strings.Builder
	content.WriteString(titleStyle.Render("metafolder " + h.version))
	content.WriteString("\n")

	for i, group := range h.keys.FullHelp() {
		if i < len(helpSections) {
			content.WriteString(sectionStyle.Render(helpSections[i]))
			content.WriteString("\n")
		}
		for _, b := range group {
			content.WriteString(formatHelpLine(HelpKey, descStyle, b))
		}
	}

	return OverlayStyle.Render(strings.TrimSuffix(content.String(), "\n"))
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, b key.Binding) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(b.Help().Key) + descStyle.Render(b.Help().Desc) + "\n"
}

// newHelpBar creates the bottom key hint bar
func newHelpBar() help.Model {
	h := help.New()
	h.Styles.ShortKey = HelpKey
	h.Styles.ShortDesc = LabelStyle
	h.Styles.ShortSeparator = LabelStyle
	return h
}
