// Package entries lists the direct children of a folder and describes
// each one for the canvas.
package entries

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
)

// DirectoryMime is the content type reported for folders
const DirectoryMime = "inode/directory"

// Hidden reports whether a name is hidden from the canvas. The sidecar
// file is a dotfile and falls under this rule.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Enumerate returns the visible direct children of folder sorted by name.
// Subfolders are listed but never descended into.
func Enumerate(ctx context.Context, folder string) ([]model.Entry, error) {
	absRoot, err := filepath.Abs(folder)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", absRoot)
	}

	var (
		mu    sync.Mutex
		found []model.Entry
	)

	conf := &fastwalk.Config{
		Follow: false,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logging.Store.Debugf("skipping %s: %v", path, err)
			return nil
		}
		if path == absRoot {
			return nil
		}

		if Hidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		entry, statErr := Stat(path)
		if statErr != nil {
			logging.Store.Debugf("skipping %s: %v", path, statErr)
		} else {
			mu.Lock()
			found = append(found, entry)
			mu.Unlock()
		}

		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, fs.SkipDir) {
		return nil, walkErr
	}

	model.SortEntries(found)
	return found, nil
}

// Stat describes a single path. It fails when the path no longer exists.
func Stat(path string) (model.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Entry{}, err
	}

	entry := model.Entry{
		Name:  filepath.Base(path),
		Path:  path,
		IsDir: info.IsDir(),
	}
	switch {
	case entry.IsDir:
		entry.MimeType = DirectoryMime
	case info.Mode().IsRegular():
		entry.MimeType = detectMime(path)
	default:
		// reading a pipe or device can block forever
		entry.MimeType = specialMime(info.Mode())
	}
	entry.IconRef = IconFor(entry.MimeType)
	return entry, nil
}
