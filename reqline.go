package reqline

import (
	"log"
	"net"
	"sync"

	"github.com/indigo-web/reqline/config"
	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/internal/address"
	httpserver "github.com/indigo-web/reqline/internal/server/http"
	"github.com/indigo-web/reqline/internal/server/tcp"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrNotRunning is returned when stopping an application which isn't serving.
var ErrNotRunning = errors.New("application is not running")

type ListenerConstructor func(network, addr string) (net.Listener, error)

// Stats merges the connection and request counters.
type Stats struct {
	Accepted, Parsed, Rejected, Failed uint64
	Active                             int64
}

// App binds a single listener and answers every accepted connection exactly once.
type App struct {
	cfg        *config.Config
	hooks      hooks
	listen     ListenerConstructor
	mu         sync.Mutex
	tcpServer  *tcp.Server
	httpServer *httpserver.Server
}

// New returns a new App instance listening on addr. Address consisting only of the
// port is bound to all interfaces.
func New(addr string) *App {
	cfg := config.Default()
	cfg.Addr = address.Normalize(addr)

	return &App{
		cfg:    cfg,
		listen: net.Listen,
	}
}

// Tune replaces the config. The address passed to New is kept unless the config
// specifies its own.
func (a *App) Tune(cfg *config.Config) *App {
	addr := a.cfg.Addr
	a.cfg = cfg
	if len(a.cfg.Addr) == 0 {
		a.cfg.Addr = addr
	}

	a.cfg.Addr = address.Normalize(a.cfg.Addr)

	return a
}

// NotifyOnStart calls the callback at the moment, when the listener is bound. However,
// it isn't strongly guaranteed that the server will be able to accept connections immediately
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed,
// that at the moment as the callback is called, the server isn't able to accept any new connections
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listener replaces the listener constructor, net.Listen by default.
func (a *App) Listener(constructor ListenerConstructor) *App {
	a.listen = constructor
	return a
}

// HTTPS serves over TLS using the certificate and the key from the files.
func (a *App) HTTPS(cert, key string) *App {
	return a.Listener(tlsListener(cert, key))
}

// AutoHTTPS enables HTTPS-mode using autocert or generates a self-signed certificate if
// listening on the local host
func (a *App) AutoHTTPS(domains ...string) *App {
	if address.IsLocalhost(a.cfg.Addr) {
		return a.Listener(selfSignedListener)
	}

	return a.Listener(autoTLSListener(domains...))
}

// Serve binds the listener and serves until stopped, in which case nil is returned. Nil
// handler answers 404 Not Found to everything.
func (a *App) Serve(handler http.Handler) error {
	if handler == nil {
		handler = http.NotFound
	}

	sock, err := a.listen("tcp", a.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", a.cfg.Addr)
	}

	httpServer := httpserver.NewServer(handler, a.cfg)
	tcpServer := tcp.NewServer(sock, httpServer.Serve, newLimiter(a.cfg.NET))

	a.mu.Lock()
	a.tcpServer, a.httpServer = tcpServer, httpServer
	a.mu.Unlock()

	log.Printf("listening on %s", sock.Addr())
	callIfNotNil(a.hooks.OnStart)
	err = tcpServer.Start()
	callIfNotNil(a.hooks.OnStop)

	if errors.Is(err, tcp.ErrShutdown) {
		return nil
	}

	return errors.Wrap(err, "accept")
}

// Stop closes the listener and all the connections. Serve returns after all the
// connection handlers are done.
func (a *App) Stop() error {
	server, err := a.server()
	if err != nil {
		return err
	}

	return server.Stop()
}

// GracefulStop stops accepting new connections, but lets the current ones be served.
func (a *App) GracefulStop() error {
	server, err := a.server()
	if err != nil {
		return err
	}

	return server.GracefulShutdown()
}

// Addr returns the address the listener is bound to, or nil if not serving yet.
func (a *App) Addr() net.Addr {
	server, err := a.server()
	if err != nil {
		return nil
	}

	return server.Addr()
}

// Stats returns the counters of the current (or the last) Serve call.
func (a *App) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tcpServer == nil {
		return Stats{}
	}

	conns, requests := a.tcpServer.Stats(), a.httpServer.Stats()

	return Stats{
		Accepted: conns.Accepted,
		Parsed:   requests.Parsed,
		Rejected: requests.Rejected,
		Failed:   requests.Failed,
		Active:   conns.Active,
	}
}

func (a *App) server() (*tcp.Server, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tcpServer == nil {
		return nil, ErrNotRunning
	}

	return a.tcpServer, nil
}

func newLimiter(cfg config.NET) *rate.Limiter {
	if cfg.AcceptRate <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(cfg.AcceptRate), cfg.AcceptBurst)
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
