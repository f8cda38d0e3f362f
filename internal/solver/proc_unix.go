//go:build unix

package solver

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the solver in its own process group so that
// cancelling also kills whatever it spawned (sh -c, wrapper scripts).
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
