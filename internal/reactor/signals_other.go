//go:build !unix

package reactor

import "os"

// platformSignals is empty on non-POSIX platforms, which have no SIGQUIT.
func platformSignals() []os.Signal {
	return nil
}
