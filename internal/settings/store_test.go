package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	s := NewStore()
	layout, err := s.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultBackgroundColor, layout.BackgroundColor)
	assert.True(t, layout.Drilldown)
	assert.Nil(t, layout.FontBold)
	assert.NotNil(t, layout.Icons)
	assert.Empty(t, layout.Icons)
	assert.Zero(t, layout.ZoomX)
}

func TestSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore()

	want := Layout{
		BackgroundColor: "rgba(10,10,10,1)",
		FontColor:       "rgba(255,0,0,1)",
		FontSize:        "large",
		FontBold:        Bool(false),
		CellSize:        90,
		Drilldown:       false,
		Zoom:            true,
		ZoomX:           150,
		ZoomY:           120,
		Icons: map[string]Icon{
			"a.txt": {PositionX: 5, PositionY: 5},
			"dir":   {PositionX: 300, PositionY: 120},
		},
	}

	require.NoError(t, s.Save(tmp, want))

	got, err := s.Load(tmp)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore()
	require.NoError(t, s.Save(tmp, Default()))

	data, err := os.ReadFile(filepath.Join(tmp, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"background_color\": ")
	assert.Contains(t, string(data), "\"font_bold\": null")
}

func TestSaveTruncatesLongerFile(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore()

	big := Default()
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		big.Icons[name] = Icon{PositionX: 1000, PositionY: 1000}
	}
	require.NoError(t, s.Save(tmp, big))
	require.NoError(t, s.Save(tmp, Default()))

	got, err := s.Load(tmp)
	require.NoError(t, err)
	assert.Empty(t, got.Icons)
}

func TestLoadMalformed(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, FileName), []byte("{not json"), 0644))

	_, err := NewStore().Load(tmp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadEmptyFileIsDefault(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, FileName), nil, 0644))

	layout, err := NewStore().Load(tmp)
	require.NoError(t, err)
	assert.True(t, layout.Drilldown)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	tmp := t.TempDir()
	content := `{"background_color":"rgba(10,10,10,1)","cell_size":60,"icons":{"a.txt":{"position_x":5,"position_y":5}}}`
	require.NoError(t, os.WriteFile(filepath.Join(tmp, FileName), []byte(content), 0644))

	layout, err := NewStore().Load(tmp)
	require.NoError(t, err)
	assert.Equal(t, "rgba(10,10,10,1)", layout.BackgroundColor)
	assert.Equal(t, 60, layout.CellSize)
	assert.True(t, layout.Drilldown)
	assert.Equal(t, Icon{PositionX: 5, PositionY: 5}, layout.Icons["a.txt"])
}

func TestUpdateTouchesOneField(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore()

	initial := Default()
	initial.Icons["keep.txt"] = Icon{PositionX: 7, PositionY: 9}
	initial.FontSize = "small"
	require.NoError(t, s.Save(tmp, initial))

	require.NoError(t, s.Update(tmp, func(l *Layout) {
		l.BackgroundColor = "rgba(1,2,3,1)"
	}))

	got, err := s.Load(tmp)
	require.NoError(t, err)
	assert.Equal(t, "rgba(1,2,3,1)", got.BackgroundColor)
	assert.Equal(t, "small", got.FontSize)
	assert.Equal(t, Icon{PositionX: 7, PositionY: 9}, got.Icons["keep.txt"])
}

func TestSaveFailsOnMissingFolder(t *testing.T) {
	err := NewStore().Save(filepath.Join(t.TempDir(), "gone"), Default())
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	l := Default()
	l.FontBold = Bool(true)
	l.Icons["x"] = Icon{PositionX: 1}

	c := l.Clone()
	*c.FontBold = false
	c.Icons["x"] = Icon{PositionX: 2}

	assert.True(t, *l.FontBold)
	assert.Equal(t, 1, l.Icons["x"].PositionX)
}
