package ybapi_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestMutationClient_Mutate(t *testing.T) {
	t.Parallel()

	t.Run("requires transport", func(t *testing.T) {
		t.Parallel()

		_, err := ybapi.NewMutationClient(nil)
		require.ErrorIs(t, err, ybapi.ErrTransportRequired)
	})

	t.Run("lifts path parameters out of the body", func(t *testing.T) {
		t.Parallel()

		transport := &staticTransport{payload: json.RawMessage(`{"data":{"task":"daily_backup"}}`)}

		client, err := ybapi.NewMutationClient(transport)
		require.NoError(t, err)

		body := ybapi.Params{"task": "daily_backup", "task_instance": "i-1"}

		result, err := client.Mutate(context.Background(), runTaskOp, body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"task":"daily_backup"}}`, string(result))

		reqs := transport.requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "/private/scheduled_tasks/daily_backup", reqs[0].Path)
		assert.Equal(t, ybapi.Params{"task_instance": "i-1"}, reqs[0].Body)

		assert.Equal(t, ybapi.Params{"task": "daily_backup", "task_instance": "i-1"}, body)
	})

	t.Run("rejects read operations", func(t *testing.T) {
		t.Parallel()

		transport := &staticTransport{}

		client, err := ybapi.NewMutationClient(transport)
		require.NoError(t, err)

		_, err = client.Mutate(context.Background(), getPITROp, nil)
		require.ErrorIs(t, err, ybapi.ErrNotMutation)
		assert.Equal(t, int32(0), transport.calls.Load())
	})

	t.Run("construction errors skip the transport", func(t *testing.T) {
		t.Parallel()

		transport := &staticTransport{}

		client, err := ybapi.NewMutationClient(transport)
		require.NoError(t, err)

		_, err = client.Mutate(context.Background(), runTaskOp, ybapi.Params{"task_instance": "i-1"})
		require.ErrorIs(t, err, ybapi.ErrMissingPathParam)
		assert.Equal(t, int32(0), transport.calls.Load())
	})

	t.Run("hooks run only on success", func(t *testing.T) {
		t.Parallel()

		transport := &staticTransport{payload: json.RawMessage(`{}`)}

		var hooked []string

		client, err := ybapi.NewMutationClient(transport, ybapi.WithOnSuccess(
			func(_ context.Context, op *ybapi.Operation, body ybapi.Params, result json.RawMessage) {
				hooked = append(hooked, op.Name()+":"+body["task"].(string)+":"+string(result))
			},
		))
		require.NoError(t, err)

		_, err = client.Mutate(context.Background(), runTaskOp, ybapi.Params{"task": "a"})
		require.NoError(t, err)

		transport.err = errBoom

		_, err = client.Mutate(context.Background(), runTaskOp, ybapi.Params{"task": "b"})
		require.ErrorIs(t, err, errBoom)

		assert.Equal(t, []string{"RunScheduledTask:a:{}"}, hooked)
	})

	t.Run("results are not cached", func(t *testing.T) {
		t.Parallel()

		cache := ybapi.NewMemoryCache(10)
		transport := &staticTransport{payload: json.RawMessage(`{}`)}

		client, err := ybapi.NewMutationClient(transport, ybapi.WithCache(cache))
		require.NoError(t, err)

		for range 2 {
			_, err = client.Mutate(context.Background(), runTaskOp, ybapi.Params{"task": "a"})
			require.NoError(t, err)
		}

		assert.Equal(t, int32(2), transport.calls.Load())
		assert.Equal(t, 0, cache.Len())
	})
}
