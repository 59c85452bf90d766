//go:build !windows

// Package process terminates the headless browser started by verify.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking the
// browser's renderer and GPU helpers down with it. Non-positive pids are ignored:
// -0 would signal our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill runs afterwards and covers a failure here.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
