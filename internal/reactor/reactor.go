// Package reactor implements the StreamService/SignalSet coordination
// layer from SPEC_FULL.md §4.5/§4.6. It replaces the original source's
// global signal-handler pattern (source/Socket.h's SignalService) with a
// channel-based select loop, per spec.md §9's explicit reimplementation
// note.
package reactor

import (
	"log"
	"sync"
)

// Stoppable is anything a StreamService can register and later ask to
// stop. tcpsock.Acceptor (closing its listener) is the only
// implementation in this runtime; tcpsock.Socket has no Stop method and
// is never registered. Stop must be safe to call more than once.
type Stoppable interface {
	Stop() error
}

// StreamService owns the set of currently-registered services and the
// one SignalSet for the process. Run blocks until a terminating signal
// arrives or the service set becomes empty, whichever happens first
// (spec.md §4.5).
type StreamService struct {
	mu       sync.Mutex
	services map[int]Stoppable
	nextID   int
	changed  chan struct{}
	signals  *SignalSet
	logger   *log.Logger
}

// New returns a StreamService driven by signals.
func New(signals *SignalSet) *StreamService {
	return &StreamService{
		services: make(map[int]Stoppable),
		changed:  make(chan struct{}, 1),
		signals:  signals,
		logger:   log.Default(),
	}
}

// SetLogger overrides the logger used for service-stop warnings. nil is
// ignored.
func (r *StreamService) SetLogger(logger *log.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Register adds svc to the service set and returns a function that
// removes it again. An Acceptor's accept loop calls the returned
// function when it exits.
func (r *StreamService) Register(svc Stoppable) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.services[id] = svc
	r.mu.Unlock()
	r.wake()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.services, id)
			r.mu.Unlock()
			r.wake()
		})
	}
}

func (r *StreamService) wake() {
	select {
	case r.changed <- struct{}{}:
	default:
	}
}

// Run blocks until a terminating signal is delivered or the service set
// is empty, then stops every remaining service and returns the signal
// value (or 0 if it returned because services drained to empty).
func (r *StreamService) Run() int {
	for {
		r.mu.Lock()
		empty := len(r.services) == 0
		r.mu.Unlock()
		if empty {
			return 0
		}
		select {
		case sig := <-r.signals.C():
			r.stopAll()
			return signalValue(sig)
		case <-r.changed:
			continue
		}
	}
}

func (r *StreamService) stopAll() {
	r.mu.Lock()
	svcs := make([]Stoppable, 0, len(r.services))
	for _, svc := range r.services {
		svcs = append(svcs, svc)
	}
	r.services = make(map[int]Stoppable)
	r.mu.Unlock()
	for _, svc := range svcs {
		if err := svc.Stop(); err != nil {
			r.logger.Printf("reactor: service stop error: %v", err)
		}
	}
}
