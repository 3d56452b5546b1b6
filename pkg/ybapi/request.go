package ybapi

import (
	"fmt"
	"net/url"
)

// Request is a resolved, transport-ready request. It is produced fresh for
// every call and is not retained by the query layer.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     map[string]any
	Body      any
}

// Values renders the query as url.Values. Slices become repeated keys.
func (r *Request) Values() url.Values {
	values := make(url.Values, len(r.Query))

	for name, value := range r.Query {
		formatted, err := formatValues(value)
		if err != nil {
			formatted = []string{fmt.Sprint(value)}
		}

		values[name] = formatted
	}

	return values
}

// URL returns the resolved path followed by the encoded query, if any.
func (r *Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}

	return r.Path + "?" + r.Values().Encode()
}
