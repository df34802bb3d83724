package core

import (
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/zoom"
)

// ViewState is a read-only snapshot of the open folder
type ViewState struct {
	Path      string
	Items     []model.CanvasItem // sorted by name
	Cosmetics Cosmetics
	Drilldown bool
	Zoom      zoom.State
	ReadOnly  bool
	Found     int
}

// Open reports whether a folder is shown
func (s ViewState) Open() bool {
	return s.Path != ""
}

// Item returns the snapshot of name
func (s ViewState) Item(name string) (model.CanvasItem, bool) {
	for _, item := range s.Items {
		if item.Name() == name {
			return item, true
		}
	}
	return model.CanvasItem{}, false
}

func snapshot(v *FolderView) ViewState {
	if v == nil {
		return ViewState{}
	}
	items := v.items.Items()
	s := ViewState{
		Path:      v.path,
		Items:     make([]model.CanvasItem, 0, len(items)),
		Cosmetics: v.Cosmetics(),
		Drilldown: v.Drilldown(),
		Zoom:      v.Zoom(),
		ReadOnly:  v.readOnly,
	}
	for _, item := range items {
		s.Items = append(s.Items, *item)
		if item.Found {
			s.Found++
		}
	}
	return s
}
