package model

import (
	"sort"
	"strings"
)

// Registry maps item names to canvas items for one open folder
type Registry struct {
	items map[string]*CanvasItem
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*CanvasItem)}
}

// Len returns the number of items
func (r *Registry) Len() int {
	return len(r.items)
}

// Get returns the item stored under name
func (r *Registry) Get(name string) (*CanvasItem, bool) {
	item, ok := r.items[name]
	return item, ok
}

// Put inserts or replaces an item under its name
func (r *Registry) Put(item *CanvasItem) {
	r.items[item.Name()] = item
}

// Delete removes name and returns the removed item
func (r *Registry) Delete(name string) (*CanvasItem, bool) {
	item, ok := r.items[name]
	if ok {
		delete(r.items, name)
	}
	return item, ok
}

// Rename moves the item stored under oldName to newName, keeping its
// position and flags. It returns false if oldName is unknown.
func (r *Registry) Rename(oldName, newName, newPath string) (*CanvasItem, bool) {
	item, ok := r.items[oldName]
	if !ok {
		return nil, false
	}
	delete(r.items, oldName)
	item.Entry.Name = newName
	if newPath != "" {
		item.Entry.Path = newPath
	}
	r.items[newName] = item
	return item, true
}

// Names returns all item names sorted ascending
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items returns all items sorted by name
func (r *Registry) Items() []*CanvasItem {
	items := make([]*CanvasItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	SortByName(items)
	return items
}

// MarkFound flags items whose name contains substr, case-insensitively,
// and clears the flag on all others. It returns the number of matches.
func (r *Registry) MarkFound(substr string) int {
	needle := strings.ToLower(substr)
	count := 0
	for _, item := range r.items {
		item.Found = needle != "" && strings.Contains(strings.ToLower(item.Name()), needle)
		if item.Found {
			count++
		}
	}
	return count
}

// ClearFound removes every find mark
func (r *Registry) ClearFound() {
	for _, item := range r.items {
		item.Found = false
	}
}

// SortByName sorts items by name ascending
func SortByName(items []*CanvasItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name() < items[j].Name()
	})
}

// SortByPosition sorts items top to bottom, then left to right
func SortByPosition(items []*CanvasItem) {
	sort.Slice(items, func(i, j int) bool {
		pi, pj := items[i].Position, items[j].Position
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		if pi.X != pj.X {
			return pi.X < pj.X
		}
		return items[i].Name() < items[j].Name()
	})
}
