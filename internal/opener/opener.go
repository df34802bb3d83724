// Package opener hands files to the desktop's default application.
package opener

import (
	"fmt"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// Open launches the default application for path without waiting for it
func Open(path string) error {
	cmd := command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	logging.UI.Debugf("launched %s for %s", cmd.Path, path)
	// reap the child in the background
	go func() { _ = cmd.Wait() }()
	return nil
}
