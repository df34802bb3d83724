//go:build windows

package opener

import "os/exec"

// command opens the given path through Windows Explorer
func command(path string) *exec.Cmd {
	return exec.Command("explorer.exe", path)
}
