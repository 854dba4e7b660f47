package dump

import (
	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/http/query"
	json "github.com/json-iterator/go"
)

var sorted = json.Config{SortMapKeys: true}.Froze()

type request struct {
	Method string         `json:"method"`
	Path   string         `json:"path"`
	Query  map[string]any `json:"query,omitempty"`
}

// JSON renders the request as a JSON object. Single query values become strings,
// repeated ones become arrays. Keys are sorted, so the output is stable.
func JSON(r *http.Request) (string, error) {
	model := request{
		Method: r.Method.String(),
		Path:   r.Path,
	}

	if r.Query != nil {
		model.Query = make(map[string]any, r.Query.Len())
		for key, value := range r.Query.Iter() {
			switch v := value.(type) {
			case query.Single:
				model.Query[key] = string(v)
			case query.Multiple:
				model.Query[key] = []string(v)
			}
		}
	}

	return sorted.MarshalToString(model)
}

// Line restores the request line of the request. The query is taken as is, in its
// raw form.
func Line(r *http.Request) string {
	var buff []byte

	buff = append(buff, r.Method.String()...)
	buff = append(buff, ' ')
	buff = append(buff, r.Path...)

	if r.Query != nil {
		buff = append(buff, '?')
		buff = append(buff, r.Query.Raw()...)
	}

	buff = append(buff, " HTTP/1.1\r\n"...)

	return string(buff)
}
