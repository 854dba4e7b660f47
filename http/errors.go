package http

import "fmt"

// ParseError classifies why a request line was rejected. It deliberately carries no
// offsets or underlying causes, only the kind.
type ParseError uint8

const (
	// ErrInvalidRequest means the request line lacks one of its three tokens.
	ErrInvalidRequest ParseError = iota + 1
	// ErrInvalidEncoding means the buffer isn't valid UTF-8.
	ErrInvalidEncoding
	// ErrInvalidProtocol means the protocol token isn't exactly HTTP/1.1.
	ErrInvalidProtocol
	// ErrInvalidMethod means the method token isn't one of the supported verbs.
	ErrInvalidMethod
)

func (p ParseError) Error() string {
	switch p {
	case ErrInvalidRequest:
		return "InvalidRequest"
	case ErrInvalidEncoding:
		return "InvalidEncodingError"
	case ErrInvalidProtocol:
		return "InvalidProtocolError"
	case ErrInvalidMethod:
		return "InvalidMethodError"
	default:
		return fmt.Sprintf("ParseError(%d)", uint8(p))
	}
}

func (p ParseError) String() string {
	return p.Error()
}

// GoString makes %#v print the same label as %v does.
func (p ParseError) GoString() string {
	return p.Error()
}
