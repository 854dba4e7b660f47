package status

// HTTPError is an error that knows which response it must result in.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) HTTPError {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrRequestTimeout          = NewError(RequestTimeout, "request timeout")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
	ErrMethodNotImplemented    = NewError(NotImplemented, "request method is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)
