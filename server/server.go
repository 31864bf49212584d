// Package server wires internal/tcpsock, internal/reactor,
// internal/pool, internal/strategy, and internal/conn into the external
// construction surface from SPEC_FULL.md §6, grounded on Server in
// source/Server.h/.cpp and on Reinis-FTM-go-http-server's
// internal/server/server.go for its Go idiom (idempotent Close, access
// logging via log.Printf).
package server

import (
	"log"

	"httpfromtcp/internal/conn"
	"httpfromtcp/internal/pool"
	"httpfromtcp/internal/reactor"
	"httpfromtcp/internal/request"
	"httpfromtcp/internal/strategy"
	"httpfromtcp/internal/tcpsock"
)

const defaultBacklog = 128

// Config is the in-process construction surface for a Server — there is
// no on-disk config format (spec.md §9 Non-goals).
type Config struct {
	Host       string
	Port       int
	MaxThreads int
	MaxLoad    int
	// ReadBufferSize is the chunk size each connection reads into.
	// <= 0 defaults to conn.DefaultReadBufferSize (spec.md §6).
	ReadBufferSize int
	Backlog        int
	Logger         *log.Logger
	// Strategy overrides the built-in Threaded dispatch strategy. Leave
	// nil to get a pool-backed Threaded strategy sized by MaxThreads and
	// MaxLoad.
	Strategy strategy.HandlerStrategy
}

// Server owns one listening Acceptor, the reactor.StreamService that
// drives it, and the HandlerStrategy each accepted connection dispatches
// through.
type Server struct {
	cfg      Config
	acceptor *tcpsock.Acceptor
	reactor  *reactor.StreamService
	signals  *reactor.SignalSet
	pool     *pool.Pool[func()]
	strategy strategy.HandlerStrategy
	logger   *log.Logger
}

// New resolves cfg.Host/cfg.Port, opens and listens on the acceptor, and
// prepares (but does not yet run) the reactor loop.
func New(cfg Config, handler request.Handler) (*Server, error) {
	if cfg.Backlog <= 0 {
		cfg.Backlog = defaultBacklog
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	endpoint, err := tcpsock.Resolve(cfg.Host, cfg.Port)
	if err != nil {
		return nil, err
	}

	acceptor := tcpsock.NewAcceptor()
	if err := acceptor.SetOption(tcpsock.ReuseAddress(true)); err != nil {
		return nil, err
	}
	if err := acceptor.Bind(endpoint); err != nil {
		return nil, err
	}
	if err := acceptor.Listen(cfg.Backlog); err != nil {
		return nil, err
	}

	strat := cfg.Strategy
	var workers *pool.Pool[func()]
	if strat == nil {
		workers = pool.NewJobPool(cfg.MaxThreads, cfg.MaxLoad)
		workers.SetLogger(logger)
		strat = strategy.NewThreaded(handler, workers)
	}

	signals := reactor.NewSignalSet()
	react := reactor.New(signals)
	react.SetLogger(logger)

	return &Server{
		cfg:      cfg,
		acceptor: acceptor,
		reactor:  react,
		signals:  signals,
		pool:     workers,
		strategy: strat,
		logger:   logger,
	}, nil
}

// Run registers the acceptor's async accept loop and blocks until a
// terminating signal arrives or the reactor's service set drains,
// returning the signal's numeric value (or 0).
func (s *Server) Run() int {
	s.acceptor.AsyncAccept(s.reactor, func(sock *tcpsock.Socket, err error) {
		if err != nil {
			s.logger.Printf("accept error: %v", err)
			return
		}
		c := conn.New(sock, s.strategy, s.logger, s.cfg.ReadBufferSize)
		s.strategy.Start(c)
	})
	return s.reactor.Run()
}

// Close stops the acceptor, unregisters signal delivery, and shuts down
// the worker pool if one is owned by this Server: in-flight jobs finish,
// jobs still queued are dropped. It is safe to call once
// after Run returns, or to trigger an early shutdown from another
// goroutine.
func (s *Server) Close() error {
	err := s.acceptor.Stop()
	_ = s.signals.Stop()
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}
