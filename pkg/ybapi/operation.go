package ybapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
)

// OperationSpec declares one API endpoint.
type OperationSpec struct {
	// Name identifies the operation in errors, logs and spans.
	Name string

	// Method is the HTTP method. Defaults to GET.
	Method string

	// Path is the path template, e.g. "/public/accounts/{accountId}/software/tracks".
	Path string

	// PathParams names the placeholders in Path.
	PathParams []string

	// QueryParams names the recognized query parameters.
	QueryParams []string

	// Version is the API version namespace. Defaults to constants.DefaultAPIVersion.
	Version int
}

// segment is one piece of a compiled path template: either literal text or
// the name of a path parameter.
type segment struct {
	literal string
	param   string
}

// Operation is a compiled, immutable endpoint descriptor.
type Operation struct {
	name        string
	method      string
	path        string
	version     int
	segments    []segment
	pathParams  []string
	pathSet     map[string]struct{}
	queryParams []string
}

// NewOperation validates spec and compiles its path template.
func NewOperation(spec OperationSpec) (*Operation, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("%w: empty path for %s", ErrInvalidPathTemplate, spec.Name)
	}

	method := strings.ToUpper(spec.Method)
	if method == "" {
		method = http.MethodGet
	}

	version := spec.Version
	if version == 0 {
		version = constants.DefaultAPIVersion
	}

	segments, err := compileTemplate(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", spec.Name, err)
	}

	pathSet := make(map[string]struct{}, len(spec.PathParams))
	for _, name := range spec.PathParams {
		pathSet[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(pathSet))

	for _, seg := range segments {
		if seg.param == "" {
			continue
		}

		if _, ok := pathSet[seg.param]; !ok {
			return nil, fmt.Errorf("%w: placeholder {%s} in %s is not a declared path parameter",
				ErrInvalidPathTemplate, seg.param, spec.Path)
		}

		seen[seg.param] = struct{}{}
	}

	for name := range pathSet {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: path parameter %q does not appear in %s",
				ErrInvalidPathTemplate, name, spec.Path)
		}
	}

	return &Operation{
		name:        spec.Name,
		method:      method,
		path:        spec.Path,
		version:     version,
		segments:    segments,
		pathParams:  append([]string(nil), spec.PathParams...),
		pathSet:     pathSet,
		queryParams: append([]string(nil), spec.QueryParams...),
	}, nil
}

// MustOperation is like NewOperation but panics on an invalid spec. It is
// intended for package-level endpoint catalogs.
func MustOperation(spec OperationSpec) *Operation {
	op, err := NewOperation(spec)
	if err != nil {
		panic(err)
	}

	return op
}

func compileTemplate(path string) ([]segment, error) {
	var (
		segments []segment
		literal  strings.Builder
	)

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '{':
			end := strings.IndexByte(path[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated placeholder in %s", ErrInvalidPathTemplate, path)
			}

			name := path[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{/") {
				return nil, fmt.Errorf("%w: malformed placeholder in %s", ErrInvalidPathTemplate, path)
			}

			if literal.Len() > 0 {
				segments = append(segments, segment{literal: literal.String()})
				literal.Reset()
			}

			segments = append(segments, segment{param: name})
			i += end + 1
		case '}':
			return nil, fmt.Errorf("%w: unbalanced '}' in %s", ErrInvalidPathTemplate, path)
		default:
			literal.WriteByte(path[i])
		}
	}

	if literal.Len() > 0 {
		segments = append(segments, segment{literal: literal.String()})
	}

	return segments, nil
}

// Name returns the operation name.
func (o *Operation) Name() string { return o.name }

// Method returns the HTTP method.
func (o *Operation) Method() string { return o.method }

// Path returns the unresolved path template.
func (o *Operation) Path() string { return o.path }

// Version returns the API version namespace.
func (o *Operation) Version() int { return o.version }

// PathParams returns the declared path parameter names.
func (o *Operation) PathParams() []string {
	return append([]string(nil), o.pathParams...)
}

// QueryParams returns the declared query parameter names.
func (o *Operation) QueryParams() []string {
	return append([]string(nil), o.queryParams...)
}

// Resource returns the resource tag shared by every cache key of this operation.
func (o *Operation) Resource() string {
	return ResourceTag(o.path, o.version)
}

// IsMutation reports whether the operation changes server state.
func (o *Operation) IsMutation() bool {
	switch o.method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (o *Operation) hasBody() bool {
	switch o.method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// Key derives the cache key for params at cursor.
func (o *Operation) Key(cursor Cursor, params Params) CacheKey {
	return DeriveKey(o.path, o.version, cursor, params)
}

// Build resolves params into a transport-ready request. Every path parameter
// must be defined; its value is percent-encoded before substitution. Declared
// query parameters with defined values are copied into the query. For POST,
// PUT and PATCH every defined field that is not a path parameter becomes the
// body. params itself is never modified.
func (o *Operation) Build(params Params) (*Request, error) {
	var path strings.Builder

	for _, seg := range o.segments {
		if seg.param == "" {
			path.WriteString(seg.literal)

			continue
		}

		value, ok := params.Lookup(seg.param)
		if !ok {
			return nil, &ConstructionError{Operation: o.name, Param: seg.param, Err: ErrMissingPathParam}
		}

		formatted, err := formatValue(value)
		if err != nil {
			return nil, &ConstructionError{Operation: o.name, Param: seg.param, Err: err}
		}

		path.WriteString(escapePathValue(formatted))
	}

	req := &Request{
		Operation: o.name,
		Method:    o.method,
		Path:      path.String(),
	}

	for _, name := range o.queryParams {
		value, ok := params.Lookup(name)
		if !ok {
			continue
		}

		_, err := formatValues(value)
		if err != nil {
			return nil, &ConstructionError{Operation: o.name, Param: name, Err: err}
		}

		if req.Query == nil {
			req.Query = make(map[string]any)
		}

		req.Query[name] = value
	}

	if o.hasBody() {
		body := make(Params)

		for name := range params {
			if _, isPath := o.pathSet[name]; isPath {
				continue
			}

			if value, ok := params.Lookup(name); ok {
				body[name] = value
			}
		}

		if len(body) > 0 {
			req.Body = body
		}
	}

	return req, nil
}

// escapePathValue percent-encodes a path parameter value so that reserved
// characters, "/" included, cannot alter the path structure.
func escapePathValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
