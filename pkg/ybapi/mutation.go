package ybapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// MutationHook runs after a successful mutation, typically to invalidate
// queries the mutation made stale.
type MutationHook func(ctx context.Context, op *Operation, body Params, result json.RawMessage)

// MutationClient executes state-changing operations. Results are never
// written to the query cache.
type MutationClient struct {
	transport Transport
	logger    Logger
	telemetry *telemetry
	onSuccess []MutationHook
}

// NewMutationClient creates a mutation client over transport.
func NewMutationClient(transport Transport, opts ...Option) (*MutationClient, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}

	o := newOptions(opts)

	return &MutationClient{
		transport: transport,
		logger:    o.logger,
		telemetry: newTelemetry(o.meterProvider, o.tracerProvider),
		onSuccess: o.onSuccess,
	}, nil
}

// Mutate submits body to op. Path parameters are lifted out of the body into
// the URL and the remaining fields are sent as the payload. The caller's map
// is left untouched.
func (m *MutationClient) Mutate(ctx context.Context, op *Operation, body Params) (json.RawMessage, error) {
	if !op.IsMutation() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotMutation, op.Name(), op.Method())
	}

	req, err := op.Build(body.Clone())
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Executing mutation", map[string]interface{}{
		"operation": op.Name(),
		"method":    req.Method,
		"path":      req.Path,
	})

	result, err := m.telemetry.execute(ctx, m.transport, req)
	m.telemetry.recordMutation(ctx, op.Name(), err)

	if err != nil {
		m.logger.Error("Mutation failed", map[string]interface{}{
			"operation": op.Name(),
			"path":      req.Path,
			"error":     err.Error(),
		})

		return nil, err
	}

	for _, hook := range m.onSuccess {
		hook(ctx, op, body, result)
	}

	return result, nil
}
