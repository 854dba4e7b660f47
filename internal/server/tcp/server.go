package tcp

import (
	"context"
	"errors"
	"net"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

var ErrShutdown = errors.New("graceful shutdown")

type OnConnection func(net.Conn)

// Stats is a snapshot of the server's connection counters.
type Stats struct {
	// Accepted is the total number of accepted connections.
	Accepted uint64
	// Active is the number of connections being handled at the moment.
	Active int64
}

type Server struct {
	sock     net.Listener
	onConn   OnConnection
	limiter  *rate.Limiter
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	closed   bool
	shutdown *atomic.Bool
	accepted *atomic.Uint64
	active   *atomic.Int64
}

// NewServer returns a new server accepting connections from the sock. Every connection is
// handled by onConn in its own goroutine and must be closed by it. Nil limiter means no
// limits on the accept rate.
func NewServer(sock net.Listener, onConn OnConnection, limiter *rate.Limiter) *Server {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		sock:     sock,
		onConn:   onConn,
		limiter:  limiter,
		ctx:      ctx,
		cancel:   cancel,
		conns:    map[net.Conn]struct{}{},
		shutdown: atomic.NewBool(false),
		accepted: atomic.NewUint64(0),
		active:   atomic.NewInt64(0),
	}
}

// Start runs the accept loop until the listener fails or the server is stopped. In the
// latter case ErrShutdown is returned. It returns only after all the connections are done.
func (s *Server) Start() error {
	wg := new(sync.WaitGroup)

	for {
		if err := s.limiter.Wait(s.ctx); err != nil {
			wg.Wait()
			return ErrShutdown
		}

		conn, err := s.sock.Accept()
		if err != nil {
			wg.Wait()

			if s.shutdown.Load() {
				return ErrShutdown
			}

			return err
		}

		s.accepted.Inc()
		s.active.Inc()
		s.track(conn)
		wg.Add(1)
		go s.connHandler(wg, conn)
	}
}

func (s *Server) stopListener() error {
	s.shutdown.Store(true)
	s.cancel()

	return s.sock.Close()
}

// Stop shuts listener and ALL the connections down, including those accepted after
// the call.
func (s *Server) Stop() error {
	s.mu.Lock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return s.stopListener()
}

// GracefulShutdown stops a listener, but leaving all the connections free to end their
// lives peacefully
func (s *Server) GracefulShutdown() error {
	return s.stopListener()
}

// Stats returns the current values of the counters.
func (s *Server) Stats() Stats {
	return Stats{
		Accepted: s.accepted.Load(),
		Active:   s.active.Load(),
	}
}

// Addr returns the listener's network address.
func (s *Server) Addr() net.Addr {
	return s.sock.Addr()
}

// track registers the connection so Stop can close it. If Stop was already called,
// the connection is closed right away.
func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		_ = conn.Close()
		return
	}

	s.conns[conn] = struct{}{}
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) connHandler(wg *sync.WaitGroup, conn net.Conn) {
	s.onConn(conn)
	s.untrack(conn)
	s.active.Dec()
	wg.Done()
}
