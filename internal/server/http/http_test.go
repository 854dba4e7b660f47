package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/indigo-web/reqline/config"
	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/http/method"
	"github.com/indigo-web/reqline/http/query"
	"github.com/indigo-web/reqline/http/status"
	"github.com/indigo-web/reqline/internal/server/tcp"
	"github.com/indigo-web/reqline/internal/server/tcp/dummy"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp/fasthttputil"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type recorder struct {
	requests []*http.Request
	errors   []error
}

func (r *recorder) Handle(request *http.Request) *http.Response {
	r.requests = append(r.requests, request.Clone())
	return http.NewResponse().String("hello")
}

func (r *recorder) HandleError(err error) *http.Response {
	r.errors = append(r.errors, err)
	return http.NewResponse().Code(http.ErrorCode(err))
}

type silent struct{}

func (silent) Handle(*http.Request) *http.Response { return nil }
func (silent) HandleError(error) *http.Response    { return nil }

type brokenClient struct {
	*tcp.NopClient
}

func (brokenClient) Write([]byte) error {
	return errors.New("broken pipe")
}

type sleepyClient struct {
	*tcp.NopClient
}

func (sleepyClient) Read() ([]byte, error) {
	return nil, fmt.Errorf("read tcp: %w", os.ErrDeadlineExceeded)
}

func TestServer(t *testing.T) {
	t.Run("simple get", func(t *testing.T) {
		handler := new(recorder)
		server := NewServer(handler, config.Default())
		client := tcp.NewNopClient([]byte("GET /search?q=go HTTP/1.1\r\nHost: localhost\r\n\r\n"))
		server.HandleRequest(client)

		require.Len(t, handler.requests, 1)
		request := handler.requests[0]
		require.Equal(t, method.GET, request.Method)
		require.Equal(t, "/search", request.Path)
		q, _ := request.Query.Get("q")
		require.Equal(t, query.Single("go"), q)

		written := string(client.Written())
		require.True(t, strings.HasPrefix(written, "HTTP/1.1 200 OK\r\n"))
		require.Contains(t, written, "\r\nServer: reqline\r\n")
		require.True(t, strings.HasSuffix(written, "\r\n\r\nhello"))
		require.Equal(t, Stats{Parsed: 1}, server.Stats())
	})

	t.Run("parse error", func(t *testing.T) {
		handler := new(recorder)
		server := NewServer(handler, config.Default())
		client := tcp.NewNopClient([]byte("GET / HTTP/1.0\r\n\r\n"))
		server.HandleRequest(client)

		require.Empty(t, handler.requests)
		require.Equal(t, []error{http.ErrInvalidProtocol}, handler.errors)
		require.True(t, strings.HasPrefix(
			string(client.Written()), "HTTP/1.1 505 HTTP Version Not Supported\r\n",
		))
		require.Equal(t, Stats{Rejected: 1}, server.Stats())
	})

	t.Run("nothing read", func(t *testing.T) {
		handler := new(recorder)
		server := NewServer(handler, config.Default())
		client := tcp.NewNopClient(nil)
		server.HandleRequest(client)

		require.Empty(t, handler.requests)
		require.Empty(t, handler.errors)
		require.Empty(t, client.Written())
		require.Equal(t, Stats{Failed: 1}, server.Stats())
	})

	t.Run("empty read", func(t *testing.T) {
		handler := new(recorder)
		server := NewServer(handler, config.Default())
		client := tcp.NewNopClient([]byte{})
		server.HandleRequest(client)

		require.Empty(t, handler.errors)
		require.Empty(t, client.Written())
		require.Equal(t, Stats{Failed: 1}, server.Stats())
	})

	t.Run("read timeout", func(t *testing.T) {
		handler := new(recorder)
		server := NewServer(handler, config.Default())
		client := sleepyClient{tcp.NewNopClient(nil)}
		server.HandleRequest(client)

		require.Empty(t, handler.requests)
		require.Empty(t, handler.errors)
		written := string(client.Written())
		require.True(t, strings.HasPrefix(written, "HTTP/1.1 408 Request Timeout\r\n"))
		require.True(t, strings.HasSuffix(written, "\r\n\r\nrequest timeout"))
		require.Equal(t, Stats{Failed: 1}, server.Stats())
	})

	t.Run("request is logged", func(t *testing.T) {
		out := new(bytes.Buffer)
		log.SetOutput(out)
		defer log.SetOutput(io.Discard)

		server := NewServer(new(recorder), config.Default())
		server.HandleRequest(tcp.NewNopClient([]byte("GET /search?tag=a&tag=b HTTP/1.1\r\n\r\n")))

		logged := out.String()
		require.Contains(t, logged, `"GET /search?tag=a&tag=b HTTP/1.1"`)
		require.Contains(t, logged, `{"method":"GET","path":"/search","query":{"tag":["a","b"]}}`)
	})

	t.Run("nil response", func(t *testing.T) {
		server := NewServer(silent{}, config.Default())
		client := tcp.NewNopClient([]byte("GET / HTTP/1.1\r\n\r\n"))
		server.HandleRequest(client)
		require.Empty(t, client.Written())
	})

	t.Run("write failure", func(t *testing.T) {
		server := NewServer(new(recorder), config.Default())
		client := brokenClient{tcp.NewNopClient([]byte("GET / HTTP/1.1\r\n\r\n"))}
		server.HandleRequest(client)
		require.Equal(t, Stats{Parsed: 1, Failed: 1}, server.Stats())
	})

	t.Run("request logging disabled", func(t *testing.T) {
		out := new(bytes.Buffer)
		log.SetOutput(out)
		defer log.SetOutput(io.Discard)

		cfg := config.Default()
		cfg.Log.Requests = false
		handler := new(recorder)
		server := NewServer(handler, cfg)
		server.HandleRequest(tcp.NewNopClient([]byte("HEAD / HTTP/1.1\r\n\r\n")))
		require.Len(t, handler.requests, 1)
		require.Empty(t, out.String())
	})
}

func TestServe(t *testing.T) {
	t.Run("closes connection", func(t *testing.T) {
		server := NewServer(http.NotFound, config.Default())
		conn := dummy.NewConn([]byte("GET /missing HTTP/1.1\r\n\r\n"))
		server.Serve(conn)

		require.True(t, conn.Closed)
		require.True(t, strings.HasPrefix(string(conn.Written), "HTTP/1.1 404 Not Found\r\n"))
	})

	t.Run("request exceeding the buffer", func(t *testing.T) {
		cfg := config.Default()
		cfg.NET.ReadBufferSize = 8
		server := NewServer(http.NotFound, cfg)
		conn := dummy.NewConn([]byte("GET /a/very/long/path HTTP/1.1\r\n\r\n"))
		server.Serve(conn)

		require.True(t, strings.HasPrefix(string(conn.Written), "HTTP/1.1 400 Bad Request\r\n"))
		require.Equal(t, Stats{Rejected: 1}, server.Stats())
	})

	t.Run("through tcp server", func(t *testing.T) {
		const N = 5

		listener := fasthttputil.NewInmemoryListener()
		httpServer := NewServer(http.NotFound, config.Default())
		tcpServer := tcp.NewServer(listener, httpServer.Serve, nil)
		stopCh := make(chan error)
		go func() {
			stopCh <- tcpServer.Start()
		}()

		for i := 0; i < N; i++ {
			conn, err := listener.Dial()
			require.NoError(t, err)
			_, err = conn.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
			require.NoError(t, err)
			response, err := io.ReadAll(conn)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(string(response), "HTTP/1.1 404 Not Found\r\n"))
			require.NoError(t, conn.Close())
		}

		require.NoError(t, tcpServer.Stop())
		require.ErrorIs(t, <-stopCh, tcp.ErrShutdown)
		require.Equal(t, uint64(N), httpServer.Stats().Parsed)
	})
}

func TestErrorCodes(t *testing.T) {
	for raw, code := range map[string]status.Code{
		"FOO / HTTP/1.1\r\n":     status.NotImplemented,
		"GET / HTTP/2\r\n":       status.HTTPVersionNotSupported,
		"GET /\r\n":              status.BadRequest,
		"\xffGET / HTTP/1.1\r\n": status.BadRequest,
	} {
		server := NewServer(http.NotFound, config.Default())
		client := tcp.NewNopClient([]byte(raw))
		server.HandleRequest(client)
		require.True(t, strings.HasPrefix(
			string(client.Written()),
			"HTTP/1.1 "+status.StringCode(code)+" ",
		), raw)
	}
}
