package tcpsock

import "fmt"

// The error taxonomy below mirrors spec.md §4.5/§7's closed set: each
// error names the construct that failed and wraps the underlying cause,
// following MiraiMindz-watt/capacitor's CacheError{Layer, Op, Err}
// struct-error shape (see DESIGN.md).

// PlatformError reports a failure in an OS-level primitive outside the
// socket/acceptor/endpoint abstractions themselves.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("tcpsock: platform error during %s: %v", e.Op, e.Err)
}
func (e *PlatformError) Unwrap() error { return e.Err }

// SocketError reports a generic socket failure not covered by
// StreamError's Send/Receive split.
type SocketError struct {
	Op  string
	Err error
}

func (e *SocketError) Error() string {
	return fmt.Sprintf("tcpsock: socket error during %s: %v", e.Op, e.Err)
}
func (e *SocketError) Unwrap() error { return e.Err }

// StreamKind distinguishes the two StreamError directions.
type StreamKind string

const (
	StreamSend    StreamKind = "send"
	StreamReceive StreamKind = "receive"
)

// StreamError reports a read/write failure on an established connection.
type StreamError struct {
	Kind StreamKind
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("tcpsock: stream %s error: %v", e.Kind, e.Err)
}
func (e *StreamError) Unwrap() error { return e.Err }

// AcceptorKind distinguishes the three AcceptorError phases.
type AcceptorKind string

const (
	AcceptorBind   AcceptorKind = "bind"
	AcceptorListen AcceptorKind = "listen"
	AcceptorAccept AcceptorKind = "accept"
)

// AcceptorError reports a failure during Acceptor.Bind/Listen/Accept.
type AcceptorError struct {
	Kind AcceptorKind
	Err  error
}

func (e *AcceptorError) Error() string {
	return fmt.Sprintf("tcpsock: acceptor %s error: %v", e.Kind, e.Err)
}
func (e *AcceptorError) Unwrap() error { return e.Err }

// ServiceError reports a failure registering or running a reactor
// service.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("tcpsock: service error during %s: %v", e.Op, e.Err)
}
func (e *ServiceError) Unwrap() error { return e.Err }

// EndpointError reports a failure resolving a host/port to an address.
type EndpointError struct {
	Op  string
	Err error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("tcpsock: endpoint error during %s: %v", e.Op, e.Err)
}
func (e *EndpointError) Unwrap() error { return e.Err }

// SocketOptionError reports an unsupported or failed SetOption call.
type SocketOptionError struct {
	Op  string
	Err error
}

func (e *SocketOptionError) Error() string {
	return fmt.Sprintf("tcpsock: socket option error during %s: %v", e.Op, e.Err)
}
func (e *SocketOptionError) Unwrap() error { return e.Err }

// ErrNotImplemented is returned by operations the current build/platform
// does not support (spec.md §4.5 NotImplemented).
var ErrNotImplemented = fmt.Errorf("tcpsock: not implemented")
