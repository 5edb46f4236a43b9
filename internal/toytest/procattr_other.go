//go:build !unix

package toytest

import "os/exec"

// isolateProcessGroup is a no-op; exec.CommandContext kills only the child.
func isolateProcessGroup(cmd *exec.Cmd) {}
