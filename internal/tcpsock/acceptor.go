package tcpsock

import (
	"context"
	"errors"
	"net"

	"httpfromtcp/internal/reactor"
)

// Option configures an Acceptor before Listen. The only option this
// runtime implements is ReuseAddress; anything else is rejected with
// ErrNotImplemented, mirroring Http::NotImplemented in the original
// source.
type Option interface {
	apply(a *Acceptor)
}

// ReuseAddress toggles SO_REUSEADDR before bind, so a restarted server
// can rebind a port still in TIME_WAIT.
type ReuseAddress bool

func (r ReuseAddress) apply(a *Acceptor) { a.reuseAddr = bool(r) }

// Acceptor opens, binds, and listens on a TCP endpoint, then hands out
// accepted connections as Sockets. It is grounded on Http::Acceptor in
// source/Socket.h.
type Acceptor struct {
	endpoint  Endpoint
	reuseAddr bool
	ln        net.Listener
}

// NewAcceptor returns an unopened Acceptor.
func NewAcceptor() *Acceptor {
	return &Acceptor{}
}

// SetOption applies a socket option prior to Listen.
func (a *Acceptor) SetOption(opt Option) error {
	if opt == nil {
		return &SocketOptionError{Op: "SetOption", Err: ErrNotImplemented}
	}
	opt.apply(a)
	return nil
}

// Bind records the endpoint Listen will use.
func (a *Acceptor) Bind(endpoint Endpoint) error {
	a.endpoint = endpoint
	return nil
}

// Listen opens the listening socket. backlog is accepted for parity with
// the original Acceptor::listen(backlog) but is not forwarded anywhere:
// the standard library's net.ListenConfig has no backlog knob, and the
// kernel default (capped by net.core.somaxconn) is what every net.Listen
// caller gets regardless.
func (a *Acceptor) Listen(backlog int) error {
	_ = backlog
	lc := net.ListenConfig{}
	if a.reuseAddr {
		lc.Control = reuseAddrControl
	}
	ln, err := lc.Listen(context.Background(), "tcp", a.endpoint.Address())
	if err != nil {
		return &AcceptorError{Kind: AcceptorListen, Err: err}
	}
	a.ln = ln
	return nil
}

// Addr returns the listening socket's bound address — useful when Port
// was 0 and the kernel chose an ephemeral port.
func (a *Acceptor) Addr() net.Addr {
	if a.ln == nil {
		return nil
	}
	return a.ln.Addr()
}

// Accept blocks for a single incoming connection.
func (a *Acceptor) Accept() (*Socket, error) {
	conn, err := a.ln.Accept()
	if err != nil {
		return nil, &AcceptorError{Kind: AcceptorAccept, Err: err}
	}
	return newSocket(conn), nil
}

// AsyncAccept registers the Acceptor with a reactor.StreamService and
// runs an accept loop on its own goroutine, invoking onAccept for each
// connection (or the terminal error) until the acceptor is stopped.
func (a *Acceptor) AsyncAccept(r *reactor.StreamService, onAccept func(*Socket, error)) {
	deregister := r.Register(a)
	go func() {
		defer deregister()
		for {
			sock, err := a.Accept()
			if err != nil {
				var aerr *AcceptorError
				if errors.As(err, &aerr) && errors.Is(aerr.Err, net.ErrClosed) {
					return
				}
				onAccept(nil, err)
				return
			}
			onAccept(sock, nil)
		}
	}()
}

// Stop closes the listening socket, unblocking any pending Accept. It
// satisfies reactor.Stoppable.
func (a *Acceptor) Stop() error {
	if a.ln == nil {
		return nil
	}
	if err := a.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return &AcceptorError{Kind: AcceptorAccept, Err: err}
	}
	return nil
}
