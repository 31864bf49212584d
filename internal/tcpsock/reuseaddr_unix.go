//go:build unix

package tcpsock

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddrControl sets SO_REUSEADDR on the raw listening socket before
// bind, grounded on MiraiMindz-watt/shockwave's
// pkg/shockwave/socket/tuning_linux.go / tuning_darwin.go split (see
// DESIGN.md).
func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return &PlatformError{Op: "setsockopt", Err: err}
	}
	if sockErr != nil {
		return &PlatformError{Op: "setsockopt", Err: sockErr}
	}
	return nil
}
