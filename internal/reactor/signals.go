package reactor

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalSet wraps the process's terminating-signal channel: SIGINT and
// SIGTERM everywhere, plus SIGQUIT on POSIX builds (see signals_unix.go
// and signals_other.go), mirroring source/Socket.h's SignalSet class.
type SignalSet struct {
	ch chan os.Signal
}

// NewSignalSet starts listening for the process's terminating signals.
func NewSignalSet() *SignalSet {
	ch := make(chan os.Signal, 1)
	sigs := append([]os.Signal{syscall.SIGINT, syscall.SIGTERM}, platformSignals()...)
	signal.Notify(ch, sigs...)
	return &SignalSet{ch: ch}
}

// C returns the channel signals are delivered on.
func (s *SignalSet) C() <-chan os.Signal { return s.ch }

// Stop unregisters the SignalSet from further delivery.
func (s *SignalSet) Stop() error {
	signal.Stop(s.ch)
	return nil
}

func signalValue(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return int(s)
	}
	return -1
}
