package http

import (
	"errors"
	"log"
	"net"
	"os"
	"strings"

	"github.com/indigo-web/reqline/config"
	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/http/status"
	"github.com/indigo-web/reqline/internal/dump"
	"github.com/indigo-web/reqline/internal/pool"
	"github.com/indigo-web/reqline/internal/render"
	"github.com/indigo-web/reqline/internal/server/tcp"
	"go.uber.org/atomic"
)

// Stats is a snapshot of the request counters.
type Stats struct {
	// Parsed is the number of requests passed to Handler.Handle.
	Parsed uint64
	// Rejected is the number of requests the parser failed on.
	Rejected uint64
	// Failed is the number of connections which failed on reading or writing.
	Failed uint64
}

// Server reads a single request per connection, answers it and closes the connection.
type Server struct {
	handler                  http.Handler
	cfg                      *config.Config
	buffers                  *pool.ObjectPool[[]byte]
	parsed, rejected, failed *atomic.Uint64
}

// idleBuffers is how many read buffers are kept between connections.
const idleBuffers = 128

func NewServer(handler http.Handler, cfg *config.Config) *Server {
	newBuffer := func() []byte {
		return make([]byte, cfg.NET.ReadBufferSize)
	}

	return &Server{
		handler:  handler,
		cfg:      cfg,
		buffers:  pool.NewObjectPool(idleBuffers, newBuffer),
		parsed:   atomic.NewUint64(0),
		rejected: atomic.NewUint64(0),
		failed:   atomic.NewUint64(0),
	}
}

// Serve handles the connection. Matches tcp.OnConnection.
func (s *Server) Serve(conn net.Conn) {
	buff := s.buffers.Acquire()
	defer s.buffers.Release(buff)

	client := tcp.NewClient(conn, s.cfg.NET.ReadTimeout, s.cfg.NET.WriteTimeout, buff)
	s.HandleRequest(client)

	if err := client.Close(); err != nil {
		log.Printf("failed to close the connection with %s: %s", client.Remote(), err)
	}
}

// HandleRequest reads the request, parses it and writes the response produced by the
// handler. The parsed request points into the client's buffer, so it's dropped as soon
// as the response is written. The client isn't closed.
func (s *Server) HandleRequest(client tcp.Client) {
	data, err := client.Read()
	if len(data) == 0 {
		s.failed.Inc()

		switch {
		case err == nil:
			log.Printf("empty read from %s", client.Remote())
		case errors.Is(err, os.ErrDeadlineExceeded):
			log.Printf("%s sent nothing in %s", client.Remote(), s.cfg.NET.ReadTimeout)
			s.write(client, http.NewResponse().Error(status.ErrRequestTimeout))
		default:
			log.Printf("failed to read into buffer from %s: %s", client.Remote(), err)
		}

		return
	}

	var response *http.Response

	request, err := http.Parse(data)
	if err != nil {
		s.rejected.Inc()
		log.Printf("failed to parse the request from %s: %s", client.Remote(), err)
		response = s.handler.HandleError(err)
	} else {
		s.parsed.Inc()
		s.logRequest(client.Remote(), request)
		response = s.handler.Handle(request)
	}

	if response == nil {
		return
	}

	if !s.write(client, response) {
		s.failed.Inc()
	}
}

func (s *Server) write(client tcp.Client, response *http.Response) bool {
	renderer := render.NewRenderer(nil, s.cfg.Headers)
	if err := client.Write(renderer.Render(response)); err != nil {
		log.Printf("failed to send the response to %s: %s", client.Remote(), err)
		return false
	}

	return true
}

// Stats returns the current values of the counters.
func (s *Server) Stats() Stats {
	return Stats{
		Parsed:   s.parsed.Load(),
		Rejected: s.rejected.Load(),
		Failed:   s.failed.Load(),
	}
}

func (s *Server) logRequest(remote net.Addr, request *http.Request) {
	if !s.cfg.Log.Requests {
		return
	}

	dumped, err := dump.JSON(request)
	if err != nil {
		log.Printf("failed to dump the request: %s", err)
		return
	}

	line := strings.TrimSuffix(dump.Line(request), "\r\n")
	log.Printf("%s: %q %s", remote, line, dumped)
}
