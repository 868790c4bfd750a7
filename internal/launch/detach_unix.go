//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// detach starts the child in its own session so it outlives the picker
// and its terminal.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
