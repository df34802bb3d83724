//go:build darwin

package opener

import "os/exec"

// command opens the given path with Launch Services
func command(path string) *exec.Cmd {
	return exec.Command("open", path)
}
