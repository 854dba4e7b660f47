package http

import (
	"errors"

	"github.com/indigo-web/reqline/http/status"
)

// Handler produces a response for every connection: Handle for successfully parsed
// requests and HandleError for those the parser rejected. A nil response means the
// connection is closed without writing anything.
type Handler interface {
	Handle(*Request) *Response
	HandleError(error) *Response
}

// HandlerFunc adapts a function into a Handler. Parse errors are answered with the code
// and the message of their StatusError.
type HandlerFunc func(*Request) *Response

func (h HandlerFunc) Handle(request *Request) *Response {
	return h(request)
}

func (HandlerFunc) HandleError(err error) *Response {
	return NewResponse().Error(StatusError(err))
}

// NotFound answers 404 Not Found to any successfully parsed request.
var NotFound = HandlerFunc(func(*Request) *Response {
	return NewResponse().Code(status.NotFound)
})

// StatusError maps an error into the status.HTTPError it must be answered with. Parse
// errors become their status counterparts, a status.HTTPError is returned as is and
// anything else results in an internal server error.
func StatusError(err error) status.HTTPError {
	var (
		parseErr ParseError
		httpErr  status.HTTPError
	)

	switch {
	case errors.As(err, &parseErr):
		switch parseErr {
		case ErrInvalidMethod:
			return status.ErrMethodNotImplemented
		case ErrInvalidProtocol:
			return status.ErrHTTPVersionNotSupported
		default:
			return status.ErrBadRequest
		}
	case errors.As(err, &httpErr):
		return httpErr
	default:
		return status.ErrInternalServerError
	}
}

// ErrorCode maps an error into the status code it must be answered with.
func ErrorCode(err error) status.Code {
	return StatusError(err).Code
}
