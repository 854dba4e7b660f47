package render

import (
	"strconv"

	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/http/status"
	"github.com/indigo-web/reqline/internal/response"
)

const (
	protocol = "HTTP/1.1 "
	crlf     = "\r\n"
)

// Renderer serializes responses into its own buffer. Every response is the last one on
// the connection, so Connection: close is always set. Not safe for concurrent use.
type Renderer struct {
	buff           []byte
	defaultHeaders map[string]string
}

func NewRenderer(buff []byte, defaultHeaders map[string]string) *Renderer {
	return &Renderer{
		buff:           buff,
		defaultHeaders: defaultHeaders,
	}
}

// Render returns the serialized response. The returned slice is valid until the next
// call.
func (r *Renderer) Render(response *http.Response) []byte {
	fields := response.Reveal()

	buff := append(r.buff[:0], protocol...)
	buff = strconv.AppendUint(buff, uint64(fields.Code), 10)
	buff = append(buff, ' ')
	if len(fields.Status) > 0 {
		buff = append(buff, fields.Status...)
	} else {
		buff = append(buff, status.Text(fields.Code)...)
	}
	buff = append(buff, crlf...)

	for key, value := range r.defaultHeaders {
		if !overridden(fields.Headers, key) {
			buff = header(buff, key, value)
		}
	}

	for _, h := range fields.Headers {
		buff = header(buff, h.Key, h.Value)
	}

	if len(fields.ContentType) > 0 {
		buff = header(buff, "Content-Type", fields.ContentType)
	}

	buff = append(buff, "Content-Length: "...)
	buff = strconv.AppendInt(buff, int64(len(fields.Body)), 10)
	buff = append(buff, crlf...)
	buff = append(buff, "Connection: close\r\n\r\n"...)
	buff = append(buff, fields.Body...)
	r.buff = buff

	return buff
}

func header(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, ':', ' ')
	buff = append(buff, value...)

	return append(buff, crlf...)
}

func overridden(headers []response.Header, key string) bool {
	for _, h := range headers {
		if h.Key == key {
			return true
		}
	}

	return false
}
