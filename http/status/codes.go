package status

import "strconv"

type (
	Code   uint16
	Status string
)

// Only the codes the server is able to produce are listed. See
// https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml for the rest.
const (
	OK Code = 200 // RFC 9110, 15.3.1

	BadRequest     Code = 400 // RFC 9110, 15.5.1
	NotFound       Code = 404 // RFC 9110, 15.5.5
	RequestTimeout Code = 408 // RFC 9110, 15.5.9

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// KnownCodes lists every code declared above.
var KnownCodes = []Code{
	OK, BadRequest, NotFound, RequestTimeout,
	InternalServerError, NotImplemented, HTTPVersionNotSupported,
}

// Text returns a text for the HTTP status code. It returns "Unknown Status Code"
// if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case RequestTimeout:
		return "Request Timeout"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	case HTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	default:
		return "Unknown Status Code"
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.FormatUint(uint64(code), 10)
}
