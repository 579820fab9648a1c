//go:build darwin || linux

package cli

import (
	"time"

	"golang.org/x/sys/unix"
)

// inputPending waits up to timeout for more bytes on fd.
func inputPending(fd uintptr, timeout time.Duration) bool {
	fds := []unix.PollFd{{
		Fd:     int32(fd),
		Events: unix.POLLIN,
	}}

	ready, err := unix.Poll(fds, max(int(timeout/time.Millisecond), 0))
	if err != nil || ready <= 0 {
		return false
	}

	return fds[0].Revents&unix.POLLIN != 0
}
