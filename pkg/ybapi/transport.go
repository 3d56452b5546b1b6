package ybapi

import (
	"context"
	"encoding/json"
)

// Transport performs network I/O for resolved requests. Authentication,
// retries and timeouts are the transport's concern.
type Transport interface {
	Execute(ctx context.Context, req *Request) (json.RawMessage, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (json.RawMessage, error)

// Execute calls f(ctx, req).
func (f TransportFunc) Execute(ctx context.Context, req *Request) (json.RawMessage, error) {
	return f(ctx, req)
}
