//go:build windows

package executor

import "os/exec"

// killProcessGroup is a no-op on Windows; WaitDelay alone bounds Wait.
func killProcessGroup(cmd *exec.Cmd) {}
