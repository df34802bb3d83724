// Package style holds the cosmetic vocabulary of a folder view: colors in
// the CSS notation stored in sidecar files, and the font and cell size ladders.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a parsed sidecar color
type Color struct {
	colorful.Color
	Alpha float64
}

// ParseColor accepts "rgba(r,g,b,a)", "rgb(r,g,b)" and "#rrggbb"
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Color{Color: c, Alpha: 1}, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseComponents(s, s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseComponents(s, s[len("rgb("):len(s)-1], 3)
	}
	return Color{}, fmt.Errorf("parse color %q: unknown notation", s)
}

func parseComponents(orig, body string, want int) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != want {
		return Color{}, fmt.Errorf("parse color %q: want %d components, got %d", orig, want, len(parts))
	}

	var rgb [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("parse color %q: bad component %q", orig, parts[i])
		}
		rgb[i] = v / 255
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("parse color %q: bad alpha %q", orig, parts[3])
		}
		alpha = a
	}

	return Color{Color: colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, Alpha: alpha}, nil
}

// String formats the color in the rgba() notation written to sidecar files
func (c Color) String() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(c.Alpha, 'f', -1, 64))
}

// Hex returns the color as #rrggbb, ignoring alpha
func (c Color) Hex() string {
	return c.Clamped().Hex()
}

// Normalize parses s and formats it back in rgba() notation
func Normalize(s string) (string, error) {
	c, err := ParseColor(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// Highlight returns a lighter variant used to tint newly added cells
func (c Color) Highlight() Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return Color{Color: c.BlendLab(white, 0.25).Clamped(), Alpha: c.Alpha}
}

// Palette is the set of background colors offered by the front-end
var Palette = []string{
	"rgba(36,31,49,1)",
	"rgba(28,113,216,1)",
	"rgba(38,162,105,1)",
	"rgba(229,165,10,1)",
	"rgba(198,70,0,1)",
	"rgba(165,29,45,1)",
	"rgba(97,53,131,1)",
	"rgba(99,69,44,1)",
	"rgba(119,118,123,1)",
}

// NextInPalette returns the palette entry after current, wrapping around.
// Colors not in the palette restart from the first entry.
func NextInPalette(current string) string {
	norm, err := Normalize(current)
	if err == nil {
		for i, p := range Palette {
			if p == norm {
				return Palette[(i+1)%len(Palette)]
			}
		}
	}
	return Palette[0]
}
