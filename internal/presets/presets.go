// Package presets stores named cosmetic settings that can be applied to
// any folder.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

// ErrNotFound is returned for an unknown preset name
var ErrNotFound = errors.New("preset not found")

// ErrInvalidName is returned for names that cannot be stored
var ErrInvalidName = errors.New("invalid preset name")

// Preset is the cosmetic part of a folder layout. Zero values mean the
// field is not part of the preset.
type Preset struct {
	Name            string `json:"name"`
	BackgroundColor string `json:"background_color,omitempty"`
	FontColor       string `json:"font_color,omitempty"`
	FontSize        string `json:"font_size,omitempty"`
	FontBold        *bool  `json:"font_bold,omitempty"`
	CellSize        int    `json:"cell_size,omitempty"`
}

// FromLayout captures the cosmetics of l under name
func FromLayout(name string, l settings.Layout) Preset {
	p := Preset{
		Name:            name,
		BackgroundColor: l.BackgroundColor,
		FontColor:       l.FontColor,
		FontSize:        l.FontSize,
		CellSize:        l.CellSize,
	}
	if l.FontBold != nil {
		p.FontBold = settings.Bool(*l.FontBold)
	}
	return p
}

// ApplyTo copies the fields set in p onto l
func (p Preset) ApplyTo(l *settings.Layout) {
	if p.BackgroundColor != "" {
		l.BackgroundColor = p.BackgroundColor
	}
	if p.FontColor != "" {
		l.FontColor = p.FontColor
	}
	if p.FontSize != "" {
		l.FontSize = p.FontSize
	}
	if p.FontBold != nil {
		l.FontBold = settings.Bool(*p.FontBold)
	}
	if p.CellSize > 0 {
		l.CellSize = p.CellSize
	}
}

// Store keeps one JSON file per preset under a base directory
type Store struct {
	d *diskv.Diskv
}

// NewStore opens the preset store rooted at dir
func NewStore(dir string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 64 * 1024,
	})}
}

// DefaultDir returns the preset directory inside dataDir
func DefaultDir(dataDir string) string {
	return filepath.Join(dataDir, "presets")
}

func validName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Save writes p, replacing a preset with the same name
func (s *Store) Save(p Preset) error {
	if err := validName(p.Name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := s.d.Write(p.Name, data); err != nil {
		return fmt.Errorf("write preset %s: %w", p.Name, err)
	}
	logging.Store.Debugf("saved preset %q", p.Name)
	return nil
}

// Get reads the preset called name
func (s *Store) Get(name string) (Preset, error) {
	if err := validName(name); err != nil {
		return Preset{}, err
	}
	if !s.d.Has(name) {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := s.d.Read(name)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset %s: %w", name, err)
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset %s: %w", name, err)
	}
	p.Name = name
	return p, nil
}

// Delete removes the preset called name
func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if !s.d.Has(name) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.d.Erase(name)
}

// List returns all preset names sorted ascending
func (s *Store) List() []string {
	var names []string
	for key := range s.d.Keys(nil) {
		if strings.HasPrefix(key, ".") {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
