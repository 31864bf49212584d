//go:build !unix

package tcpsock

import "syscall"

// reuseAddrControl is a no-op off POSIX, where SO_REUSEADDR via
// x/sys/unix is unavailable.
func reuseAddrControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
