package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// PresetPicker lists saved presets and names new ones
type PresetPicker struct {
	visible bool
	names   []string
	cursor  int
	naming  bool
	input   textinput.Model
}

// NewPresetPicker creates a hidden picker
func NewPresetPicker() PresetPicker {
	in := textinput.New()
	in.Placeholder = "preset name"
	in.CharLimit = 64
	in.Prompt = "name: "
	return PresetPicker{input: in}
}

// Open shows the picker with names
func (p *PresetPicker) Open(names []string) {
	p.visible = true
	p.names = names
	p.cursor = 0
	p.naming = false
}

// Close hides the picker
func (p *PresetPicker) Close() {
	p.visible = false
	p.naming = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p PresetPicker) IsVisible() bool {
	return p.visible
}

// Move moves the cursor by delta, clamped to the list
func (p *PresetPicker) Move(delta int) {
	if len(p.names) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.names)-1)
}

// Selected returns the name under the cursor
func (p PresetPicker) Selected() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.names) {
		return "", false
	}
	return p.names[p.cursor], true
}

// StartNaming switches to entering a name for a new preset
func (p *PresetPicker) StartNaming() {
	p.naming = true
	p.input.SetValue("")
	p.input.Focus()
}

// View renders the picker
func (p PresetPicker) View() string {
	if !p.visible {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(ColorText)
	cursorStyle := lipgloss.NewStyle().Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Presets"))
	b.WriteString("\n\n")

	if len(p.names) == 0 {
		b.WriteString(LabelStyle.Render("no presets saved"))
		b.WriteString("\n")
	}
	for i, name := range p.names {
		if i == p.cursor && !p.naming {
			b.WriteString(cursorStyle.Render(" " + name + " "))
		} else {
			b.WriteString(itemStyle.Render(" " + name + " "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.naming {
		b.WriteString(p.input.View())
	} else {
		b.WriteString(HelpKey.Render("enter") + LabelStyle.Render(" apply  ") +
			HelpKey.Render("n") + LabelStyle.Render(" save current  ") +
			HelpKey.Render("x") + LabelStyle.Render(" delete  ") +
			HelpKey.Render("esc") + LabelStyle.Render(" close"))
	}
	return OverlayStyle.Render(b.String())
}
