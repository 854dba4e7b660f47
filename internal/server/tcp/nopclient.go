package tcp

import (
	"io"
	"net"
)

// NopClient is implemented in testing purposes
type NopClient struct {
	data    []byte
	written []byte
	closed  bool
}

// NewNopClient returns a client which returns the data on the first read and io.EOF on
// the following ones. Everything written is kept and available via Written.
func NewNopClient(data []byte) *NopClient {
	return &NopClient{data: data}
}

func (n *NopClient) Read() ([]byte, error) {
	if n.data == nil {
		return nil, io.EOF
	}

	data := n.data
	n.data = nil

	return data, nil
}

func (n *NopClient) Write(b []byte) error {
	n.written = append(n.written, b...)
	return nil
}

func (*NopClient) Remote() net.Addr {
	return &net.TCPAddr{}
}

func (n *NopClient) Close() error {
	n.closed = true
	return nil
}

// Written returns everything was written into the client.
func (n *NopClient) Written() []byte {
	return n.written
}

// Closed indicates, whether Close was called.
func (n *NopClient) Closed() bool {
	return n.closed
}
