// Package recent remembers which folders were opened, so the next start
// returns to the last one.
package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// FileName is the history file inside the data directory
const FileName = "recent.json"

// MaxHistory caps the remembered folders
const MaxHistory = 20

// History holds persistent navigation history
type History struct {
	LastFolder string   `json:"last_folder,omitempty"`
	Folders    []string `json:"folders,omitempty"` // most recent first
}

// Manager handles loading and saving history
type Manager struct {
	path         string
	history      History
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a manager storing its file in dataDir
func NewManager(dataDir string) *Manager {
	return &Manager{
		path:         filepath.Join(dataDir, FileName),
		saveDuration: 2 * time.Second,
	}
}

// Load loads history from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.history = History{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.history)
}

// Save saves history to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.history, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// LastFolder returns the folder opened most recently
func (m *Manager) LastFolder() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.LastFolder
}

// Folders returns the remembered folders, most recent first
func (m *Manager) Folders() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.history.Folders)
}

// Visit records folder as opened and schedules a debounced save
func (m *Manager) Visit(folder string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.history.LastFolder == folder {
		return
	}

	m.history.LastFolder = folder
	folders := slices.DeleteFunc(m.history.Folders, func(f string) bool { return f == folder })
	folders = append([]string{folder}, folders...)
	if len(folders) > MaxHistory {
		folders = folders[:MaxHistory]
	}
	m.history.Folders = folders
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			if err := m.saveLocked(); err != nil {
				logging.Store.Warnf("failed to save history: %v", err)
			}
		}
	})
}

// StartFolder picks the folder to open when none is given: the last
// folder if it still exists, else ~/Desktop, else the home directory
func (m *Manager) StartFolder() string {
	if last := m.LastFolder(); last != "" && isDir(last) {
		return last
	}

	home, err := homedir.Dir()
	if err != nil {
		logging.Core.Warnf("no home directory: %v", err)
		return "."
	}
	if desktop := filepath.Join(home, "Desktop"); isDir(desktop) {
		return desktop
	}
	return home
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
