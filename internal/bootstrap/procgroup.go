package bootstrap

import (
	"golang.org/x/sys/unix"
)

// EnforceOwnProcessGroup requires the calling process to be its own
// process-group leader, making its own pgid that of a fresh setsid-less
// group rather than inheriting the parent shell's (spec.md §6 "Must be
// invoked in its own process group (enforced at startup)").
func EnforceOwnProcessGroup() error {
	pid := unix.Getpid()
	pgrp, err := unix.Getpgid(pid)
	if err != nil {
		return err
	}
	if pgrp == pid {
		return nil
	}
	return unix.Setpgid(pid, 0)
}
