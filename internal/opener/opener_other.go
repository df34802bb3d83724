//go:build !windows && !darwin

package opener

import "os/exec"

// command opens the given path with the freedesktop handler
func command(path string) *exec.Cmd {
	return exec.Command("xdg-open", path)
}
