package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/metafolder/internal/style"
)

// Colors
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14")
	ColorDanger     = lipgloss.Color("#FF5555")
	ColorWarning    = lipgloss.Color("#F5A623")
	ColorMuted      = lipgloss.Color("#9CA3AF")
	ColorBackground = lipgloss.Color("#1F1F23")
	ColorFound      = lipgloss.Color("#FDE047") // yellow
	ColorText       = lipgloss.Color("#E4E4E7")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Padding(0, 1)

	NameStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	BadgeStyle = lipgloss.NewStyle().
			Background(ColorWarning).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

// palette holds the styles the canvas grid is painted with, derived from
// the folder's cosmetics
type palette struct {
	background lipgloss.Style
	cell       lipgloss.Style
	fresh      lipgloss.Style
	selected   lipgloss.Style
	found      lipgloss.Style
	ghost      lipgloss.Style
}

// newPalette resolves sidecar colors to terminal styles. Colors that do
// not parse fall back to the default background.
func newPalette(background, font string, bold bool) palette {
	bg, err := style.ParseColor(background)
	if err != nil {
		bg, _ = style.ParseColor(style.Palette[0])
	}
	fg, err := style.ParseColor(font)
	if err != nil {
		fg, _ = style.ParseColor("rgba(255,255,255,1)")
	}
	cellBg := bg.Highlight()

	base := lipgloss.NewStyle().Foreground(lipgloss.Color(fg.Hex()))
	return palette{
		background: lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())),
		cell:       base.Background(lipgloss.Color(cellBg.Hex())).Bold(bold),
		fresh:      base.Background(lipgloss.Color(cellBg.Highlight().Hex())).Bold(bold).Italic(true),
		selected:   base.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		found:      base.Background(ColorFound).Foreground(lipgloss.Color("#000000")).Bold(bold),
		ghost:      lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())).Foreground(ColorPrimary),
	}
}

func (p palette) style(k paint) lipgloss.Style {
	switch k {
	case paintCell:
		return p.cell
	case paintFresh:
		return p.fresh
	case paintSelected:
		return p.selected
	case paintFound:
		return p.found
	case paintGhost:
		return p.ghost
	default:
		return p.background
	}
}
