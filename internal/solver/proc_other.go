//go:build !unix

package solver

import "os/exec"

// Children are not tracked here; cmd.WaitDelay still bounds Solve.
func killProcessGroup(cmd *exec.Cmd) {}
