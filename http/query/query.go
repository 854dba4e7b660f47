package query

import (
	"iter"
	"strings"
)

// Value is either Single or Multiple. No other implementations exist.
type Value interface {
	value()
}

// Single is a value of a key that was met exactly once.
type Single string

// Multiple holds values of a repeated key in their arrival order.
type Multiple []string

func (Single) value()   {}
func (Multiple) value() {}

// Query is a multi-map of the URI query. Keys and values are substrings of the text
// it was parsed from, so they share its lifetime.
type Query struct {
	raw    string
	params map[string]Value
}

// Parse splits the text on '&' into parameters and every parameter on its first '='.
// A parameter without '=' becomes a key with an empty value. Empty parameters (e.g. a
// trailing '&' or an empty text) are stored under the empty key. No decoding is applied.
func Parse(text string) *Query {
	q := &Query{
		raw:    text,
		params: make(map[string]Value, 1),
	}

	for {
		end := strings.IndexByte(text, '&')
		param := text
		if end != -1 {
			param = text[:end]
		}

		key, value := param, ""
		if eq := strings.IndexByte(param, '='); eq != -1 {
			key, value = param[:eq], param[eq+1:]
		}

		q.add(key, value)

		if end == -1 {
			return q
		}

		text = text[end+1:]
	}
}

func (q *Query) add(key, value string) {
	switch existing := q.params[key].(type) {
	case nil:
		q.params[key] = Single(value)
	case Single:
		q.params[key] = Multiple{string(existing), value}
	case Multiple:
		q.params[key] = append(existing, value)
	}
}

// Get returns the value by the key, if presented. It never modifies the query.
func (q *Query) Get(key string) (Value, bool) {
	value, found := q.params[key]
	return value, found
}

// Has indicates, whether there's an entry of the key.
func (q *Query) Has(key string) bool {
	_, found := q.params[key]
	return found
}

// Len returns a number of unique keys.
func (q *Query) Len() int {
	return len(q.params)
}

// Raw returns the text the query was parsed from.
func (q *Query) Raw() string {
	return q.raw
}

// Iter returns an iterator over the entries. Keys order is not defined.
func (q *Query) Iter() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for key, value := range q.params {
			if !yield(key, value) {
				break
			}
		}
	}
}

// Clone returns a deep copy owning all of its strings, so it may outlive the buffer
// the original query was parsed from.
func (q *Query) Clone() *Query {
	cloned := &Query{
		raw:    strings.Clone(q.raw),
		params: make(map[string]Value, len(q.params)),
	}

	for key, value := range q.params {
		switch v := value.(type) {
		case Single:
			cloned.params[strings.Clone(key)] = Single(strings.Clone(string(v)))
		case Multiple:
			values := make(Multiple, len(v))
			for i := range v {
				values[i] = strings.Clone(v[i])
			}

			cloned.params[strings.Clone(key)] = values
		}
	}

	return cloned
}

// First returns the first value: the Single itself or the first of Multiple.
func First(value Value) string {
	switch v := value.(type) {
	case Single:
		return string(v)
	case Multiple:
		if len(v) > 0 {
			return v[0]
		}
	}

	return ""
}

// All returns the values as a slice. For Single it's a slice of one element.
func All(value Value) []string {
	switch v := value.(type) {
	case Single:
		return []string{string(v)}
	case Multiple:
		return v
	}

	return nil
}
