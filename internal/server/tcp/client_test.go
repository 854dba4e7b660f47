package tcp

import (
	"errors"
	"testing"
	"time"

	"github.com/indigo-web/reqline/internal/server/tcp/dummy"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Run("single read", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\n"))
		client := NewClient(conn, time.Second, time.Second, make([]byte, 4))
		data, err := client.Read()
		require.NoError(t, err)
		require.Equal(t, "GET ", string(data))
		require.False(t, conn.ReadDeadline.IsZero())
	})

	t.Run("write", func(t *testing.T) {
		conn := dummy.NewConn(nil)
		client := NewClient(conn, time.Second, time.Second, nil)
		require.NoError(t, client.Write([]byte("hello")))
		require.Equal(t, "hello", string(conn.Written))
		require.False(t, conn.WriteDeadline.IsZero())
		require.NoError(t, client.Close())
		require.True(t, conn.Closed)
	})

	t.Run("deadline failure", func(t *testing.T) {
		conn := dummy.NewConn([]byte("data"))
		conn.DeadlineError = errors.New("closed")
		client := NewClient(conn, time.Second, time.Second, make([]byte, 16))
		_, err := client.Read()
		require.EqualError(t, err, "closed")
		require.EqualError(t, client.Write([]byte("x")), "closed")
		require.Empty(t, conn.Written)
	})
}
