//go:build unix

package reactor

import (
	"os"
	"syscall"
)

// platformSignals adds SIGQUIT on POSIX platforms, grounded on
// MiraiMindz-watt/shockwave's tuning_linux.go / tuning_darwin.go split
// (see DESIGN.md).
func platformSignals() []os.Signal {
	return []os.Signal{syscall.SIGQUIT}
}
