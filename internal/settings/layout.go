package settings

import "maps"

// FileName is the sidecar file kept inside every customized folder
const FileName = ".metafolder"

// DefaultBackgroundColor is used when a folder has no sidecar yet
const DefaultBackgroundColor = "rgba(36,31,49,1)"

// Icon is the persisted position of one canvas item
type Icon struct {
	PositionX int `json:"position_x"`
	PositionY int `json:"position_y"`
}

// Layout is the on-disk schema of a sidecar file
type Layout struct {
	BackgroundColor string          `json:"background_color"`
	FontColor       string          `json:"font_color"`
	FontSize        string          `json:"font_size"`
	FontBold        *bool           `json:"font_bold"` // nil: never customized
	CellSize        int             `json:"cell_size"`
	Drilldown       bool            `json:"drilldown"`
	Zoom            bool            `json:"zoom"`
	ZoomX           int             `json:"zoom_x"`
	ZoomY           int             `json:"zoom_y"`
	Icons           map[string]Icon `json:"icons"`
}

// Default returns the structural default for a folder without a sidecar
func Default() Layout {
	return Layout{
		BackgroundColor: DefaultBackgroundColor,
		Drilldown:       true,
		Icons:           make(map[string]Icon),
	}
}

// Clone returns a deep copy
func (l Layout) Clone() Layout {
	out := l
	if l.FontBold != nil {
		bold := *l.FontBold
		out.FontBold = &bold
	}
	out.Icons = make(map[string]Icon, len(l.Icons))
	maps.Copy(out.Icons, l.Icons)
	return out
}

// Bool returns a pointer to b, for setting FontBold
func Bool(b bool) *bool {
	return &b
}
