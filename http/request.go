package http

import (
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/reqline/http/method"
	"github.com/indigo-web/reqline/http/query"
	"github.com/indigo-web/utils/uf"
)

const protocol = "HTTP/1.1"

// Request represents the request line of an HTTP/1.1 request.
//
// Path and every string inside Query are NOT copied: they point into the buffer passed to
// Parse. The request therefore must not be used after the buffer was reused, modified or
// released. Use Clone to get a copy that is safe to retain.
type Request struct {
	// Path is the request target without the query. Never contains '?'.
	Path string
	// Query is nil if the request target had no '?'. Otherwise, it's built from everything
	// after the first '?', even if that's empty.
	Query *query.Query
	// Method is never method.Unknown.
	Method method.Method
}

// Parse parses the first line of the request. Only the request line is inspected, anything
// after it (headers, body, garbage) is ignored. Errors are always of type ParseError and are
// checked in the following order: encoding, tokens, protocol, method.
func Parse(buff []byte) (*Request, error) {
	if !utf8.Valid(buff) {
		return nil, ErrInvalidEncoding
	}

	line := uf.B2S(buff)

	methodToken, line, ok := nextWord(line)
	if !ok {
		return nil, ErrInvalidRequest
	}

	path, line, ok := nextWord(line)
	if !ok {
		return nil, ErrInvalidRequest
	}

	proto, _, ok := nextWord(line)
	if !ok {
		return nil, ErrInvalidRequest
	}

	if proto != protocol {
		return nil, ErrInvalidProtocol
	}

	m, err := method.Parse(methodToken)
	if err != nil {
		return nil, ErrInvalidMethod
	}

	request := &Request{
		Path:   path,
		Method: m,
	}

	if q := strings.IndexByte(path, '?'); q != -1 {
		request.Path = path[:q]
		request.Query = query.Parse(path[q+1:])
	}

	return request, nil
}

// nextWord returns the text before the first space or carriage return and the rest after
// it. A word without a terminating delimiter isn't a word.
func nextWord(s string) (word, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\r' {
			return s[:i], s[i+1:], true
		}
	}

	return "", "", false
}

// Clone returns a deep copy of the request, detached from the buffer it was parsed from.
func (r *Request) Clone() *Request {
	cloned := &Request{
		Path:   strings.Clone(r.Path),
		Method: r.Method,
	}

	if r.Query != nil {
		cloned.Query = r.Query.Clone()
	}

	return cloned
}
