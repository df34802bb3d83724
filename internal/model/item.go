package model

import "sort"

// Entry describes one filesystem entry as enumerated from a folder
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	MimeType string
	IconRef  string // freedesktop icon name
}

// CanvasItem is one filesystem entry placed on the canvas
type CanvasItem struct {
	Entry

	// Position is the logical (unzoomed) top-left corner
	Position Point

	// NewlyAdded is set from detection until the user drops the item
	// somewhere deliberately. Such items are left out of position scans.
	NewlyAdded bool

	// Found marks a match of the last find
	Found bool
}

// Name returns the registry key of the item
func (c *CanvasItem) Name() string {
	return c.Entry.Name
}

// SortEntries orders entries by name so placement is reproducible
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
