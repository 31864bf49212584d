// Package strategy implements the HandlerStrategy policy object from
// SPEC_FULL.md §4.8, grounded on HandlerStrategy/ThreadedHandlerStrategy
// in source/Server.h and source/Server.cpp.
package strategy

import (
	"httpfromtcp/internal/pool"
	"httpfromtcp/internal/request"
	"httpfromtcp/internal/response"
)

// Connection is the minimal surface a HandlerStrategy needs from a
// connection to start or stop it. Defined locally (rather than importing
// internal/conn) so conn can depend on strategy without a cycle.
type Connection interface {
	Start()
	Abort()
}

// Socket is the minimal surface Respond needs to write a stock response.
type Socket interface {
	Write([]byte) (int, error)
}

// HandlerStrategy decides how a connection's user-handler dispatch and
// worker lifecycle are carried out.
type HandlerStrategy interface {
	// Handle invokes respond with the strategy's configured
	// request.Handler, synchronously.
	Handle(respond func(request.Handler))
	// Respond writes a stock, body-less response for a given status
	// directly to sock — used for protocol errors that occur before a
	// request.Request could be handed to the user handler.
	Respond(sock Socket, status response.StatusCode) error
	// Start arranges for c.Start to run, by whatever concurrency policy
	// the strategy implements.
	Start(c Connection)
	// Stop notifies the strategy that c is finished, for strategies that
	// track per-connection state.
	Stop(c Connection)
}

// Threaded is the built-in strategy: each connection's Start() runs as a
// job on a bounded pool.Pool, and Handle invokes the single configured
// request.Handler synchronously on that job's goroutine.
type Threaded struct {
	handler request.Handler
	pool    *pool.Pool[func()]
}

// NewThreaded returns a Threaded strategy dispatching to handler on p.
func NewThreaded(handler request.Handler, p *pool.Pool[func()]) *Threaded {
	return &Threaded{handler: handler, pool: p}
}

// Handle invokes respond with the strategy's handler.
func (t *Threaded) Handle(respond func(request.Handler)) {
	respond(t.handler)
}

// Respond writes a stock response for status to sock.
func (t *Threaded) Respond(sock Socket, status response.StatusCode) error {
	raw, err := response.Stock(status)
	if err != nil {
		return err
	}
	_, err = sock.Write(raw)
	return err
}

// Start submits c.Start as a job on the pool. If the pool rejects the
// job (queue full, P6), c.Abort is called immediately and c.Start never
// runs.
func (t *Threaded) Start(c Connection) {
	if !t.pool.Add(func() { c.Start() }) {
		c.Abort()
	}
}

// Stop is a no-op for Threaded: the pool owns worker lifecycle, and a
// connection that did start closes its own socket when Start returns.
func (t *Threaded) Stop(c Connection) {}
