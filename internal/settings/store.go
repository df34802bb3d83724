package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// ErrMalformed is returned when a sidecar file exists but cannot be parsed
var ErrMalformed = errors.New("malformed folder settings")

// Store reads and writes sidecar files
type Store struct {
	fileName string
}

// NewStore creates a store using the standard sidecar file name
func NewStore() *Store {
	return &Store{fileName: FileName}
}

// Path returns the sidecar path for a folder
func (s *Store) Path(folder string) string {
	return filepath.Join(folder, s.fileName)
}

// Load reads the sidecar of folder. A missing, unreadable or empty file
// yields Default(); a file that cannot be parsed yields ErrMalformed.
func (s *Store) Load(folder string) (Layout, error) {
	path := s.Path(folder)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Store.Warnf("cannot read %s, using defaults: %v", path, err)
		}
		return Default(), nil
	}

	if len(data) == 0 {
		logging.Store.Debugf("empty settings file %s, using defaults", path)
		return Default(), nil
	}

	// Start from the defaults so absent fields keep them
	layout := Default()
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if layout.Icons == nil {
		layout.Icons = make(map[string]Icon)
	}
	return layout, nil
}

// Save overwrites the sidecar of folder with layout
func (s *Store) Save(folder string, layout Layout) error {
	if layout.Icons == nil {
		layout.Icons = make(map[string]Icon)
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	path := s.Path(folder)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}

	logging.Store.Debugf("saved %s (%d icons)", path, len(layout.Icons))
	return nil
}

// Update loads the latest sidecar, applies mutate and saves the result.
// Only the fields mutate touches change on disk.
func (s *Store) Update(folder string, mutate func(*Layout)) error {
	layout, err := s.Load(folder)
	if err != nil {
		return err
	}
	mutate(&layout)
	return s.Save(folder, layout)
}
