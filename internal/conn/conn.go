// Package conn drives a single accepted socket through the connection
// lifecycle from SPEC_FULL.md §4.2: START, READ_HEADER, the optional
// READ_BODY, HANDLE, WRITE, CLOSED. It is grounded on Http::Connection
// in source/Server.h / source/Server.cpp, including the corrected
// zero-bytes-means-EOF check spec.md §9 calls out as a fix over the
// original's inverted readBody check.
package conn

import (
	"fmt"
	"log"
	"time"

	"httpfromtcp/internal/headers"
	"httpfromtcp/internal/httpparser"
	"httpfromtcp/internal/request"
	"httpfromtcp/internal/response"
	"httpfromtcp/internal/strategy"
	"httpfromtcp/internal/tcpsock"
)

// DefaultReadBufferSize is the chunk size each ReadSome call fills when
// New is given bufferSize <= 0, mirroring the original source's
// fixed-size read buffer (spec.md §6).
const DefaultReadBufferSize = 8 * 1024

// Connection drives one accepted socket from its first byte to close.
// It satisfies strategy.Connection.
type Connection struct {
	sock     *tcpsock.Socket
	strategy strategy.HandlerStrategy
	logger   *log.Logger

	parser *httpparser.Parser
	req    *request.Request
	buf    []byte
}

// New wraps an accepted socket for dispatch through strat. logger may be
// nil, in which case log.Default() is used for access logging.
// bufferSize <= 0 falls back to DefaultReadBufferSize.
func New(sock *tcpsock.Socket, strat strategy.HandlerStrategy, logger *log.Logger, bufferSize int) *Connection {
	if logger == nil {
		logger = log.Default()
	}
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}
	return &Connection{
		sock:     sock,
		strategy: strat,
		logger:   logger,
		parser:   httpparser.New(),
		req:      request.New(),
		buf:      make([]byte, bufferSize),
	}
}

// Start runs the full lifecycle to completion and always closes the
// socket on return.
func (c *Connection) Start() {
	start := time.Now()
	defer c.sock.Close()

	leftover, ok := c.readHeaders()
	if !ok {
		return
	}
	if !c.fillBody(leftover) {
		return
	}
	c.dispatch(start)
}

// Abort closes the socket without running any part of the lifecycle —
// used when the strategy could not schedule Start at all (pool queue
// full, P6).
func (c *Connection) Abort() {
	_ = c.sock.Close()
}

// readHeaders feeds the parser until it reaches a terminal verdict. On
// Good it returns the unconsumed tail of the last read (which may
// already contain part of the body) so fillBody can continue from
// there without re-reading it from the socket.
func (c *Connection) readHeaders() ([]byte, bool) {
	for {
		n, err := c.sock.ReadSome(c.buf)
		if n == 0 {
			return nil, false
		}
		result, pos := c.parser.Parse(c.buf[:n], c.req)
		switch result {
		case httpparser.Good:
			return c.buf[pos:n], true
		case httpparser.Bad:
			c.respondStock(response.StatusBadRequest)
			return nil, false
		default:
			if err != nil {
				return nil, false
			}
		}
	}
}

// fillBody drains the declared Content-Length, starting from leftover
// (bytes already read past the header terminator) before pulling more
// from the socket.
func (c *Connection) fillBody(leftover []byte) bool {
	done, err := httpparser.Fill(leftover, c.req)
	if err != nil {
		c.respondStock(response.StatusBadRequest)
		return false
	}
	for !done {
		n, rerr := c.sock.ReadSome(c.buf)
		if n == 0 {
			return false
		}
		done, err = httpparser.Fill(c.buf[:n], c.req)
		if err != nil {
			c.respondStock(response.StatusBadRequest)
			return false
		}
		if rerr != nil && !done {
			return false
		}
	}
	return true
}

// dispatch invokes the configured handler and writes its response,
// falling back to 500 if the handler returns nil.
func (c *Connection) dispatch(start time.Time) {
	var resp *response.Response
	c.strategy.Handle(func(handler request.Handler) {
		resp = handler(c.req)
	})
	if resp == nil {
		resp = response.New(response.StatusInternalServerError, headers.New(), nil, "")
	}
	_, err := c.sock.Write(resp.Raw())
	c.logAccess(start, int(resp.Status), err)
}

func (c *Connection) respondStock(status response.StatusCode) {
	_ = c.strategy.Respond(c.sock, status)
}

func fmtDur(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func (c *Connection) logAccess(start time.Time, status int, err error) {
	remote := "-"
	if addr := c.sock.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	if err != nil {
		c.logger.Printf("%s %s %s %d %s err=%q", remote, c.req.Method, c.req.URI.Raw(), status, fmtDur(time.Since(start)), err.Error())
		return
	}
	c.logger.Printf("%s %s %s %d %s", remote, c.req.Method, c.req.URI.Raw(), status, fmtDur(time.Since(start)))
}
