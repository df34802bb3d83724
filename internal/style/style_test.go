package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorNotations(t *testing.T) {
	c, err := ParseColor("rgba(10, 20, 30, 0.5)")
	require.NoError(t, err)
	assert.Equal(t, "rgba(10,20,30,0.5)", c.String())
	assert.Equal(t, "#0a141e", c.Hex())

	c, err = ParseColor("rgb(255,255,255)")
	require.NoError(t, err)
	assert.Equal(t, "rgba(255,255,255,1)", c.String())

	c, err = ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "rgba(255,0,0,1)", c.String())
}

func TestParseColorRejects(t *testing.T) {
	for _, bad := range []string{"", "red", "rgba(1,2,3)", "rgb(300,0,0)", "rgba(1,2,3,2)", "#zzzzzz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestNextInPaletteWraps(t *testing.T) {
	last := Palette[len(Palette)-1]
	assert.Equal(t, Palette[0], NextInPalette(last))
	assert.Equal(t, Palette[1], NextInPalette(Palette[0]))
	assert.Equal(t, Palette[0], NextInPalette("not a color"))
}

func TestStepSizes(t *testing.T) {
	assert.Equal(t, "large", StepFontSize("medium", 1))
	assert.Equal(t, "xx-large", StepFontSize("xx-large", 3))
	assert.Equal(t, "small", StepFontSize("", -1))

	assert.Equal(t, 90, StepCellSize(60, 1))
	assert.Equal(t, 40, StepCellSize(60, -5))
	assert.Equal(t, 60, StepCellSize(75, 0))
}
