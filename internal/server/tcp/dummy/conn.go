package dummy

import (
	"io"
	"net"
	"time"
)

// Conn is a net.Conn which serves the data on the first read and records everything
// written into it. It's implemented in testing purposes.
type Conn struct {
	Data          []byte
	Written       []byte
	Closed        bool
	DeadlineError error
	ReadDeadline  time.Time
	WriteDeadline time.Time
}

var _ net.Conn = (*Conn)(nil)

func NewConn(data []byte) *Conn {
	return &Conn{Data: data}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if len(c.Data) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.Data)
	c.Data = c.Data[n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.Written = append(c.Written, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	c.Closed = true
	return nil
}

func (*Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{}
}

func (*Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Conn) SetDeadline(t time.Time) error {
	c.ReadDeadline, c.WriteDeadline = t, t
	return c.DeadlineError
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.ReadDeadline = t
	return c.DeadlineError
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	c.WriteDeadline = t
	return c.DeadlineError
}
