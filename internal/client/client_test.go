package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, ybapi.ErrConfigRequired)
	})

	t.Run("requires API endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&ybapi.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API endpoint is required")
	})

	t.Run("creates client with access token", func(t *testing.T) {
		t.Parallel()

		client, err := New(&ybapi.Config{
			APIEndpoint: "https://cloud.example.com/api",
			AccessToken: "test-token",
		})
		require.NoError(t, err)
		assert.NotNil(t, client.GetTokenManager())
	})

	t.Run("creates client without authentication", func(t *testing.T) {
		t.Parallel()

		client, err := New(&ybapi.Config{APIEndpoint: "https://cloud.example.com/api"})
		require.NoError(t, err)
		assert.Nil(t, client.GetTokenManager())
	})

	t.Run("rejects unknown cache type", func(t *testing.T) {
		t.Parallel()

		_, err := New(&ybapi.Config{
			APIEndpoint: "https://cloud.example.com/api",
			Cache:       &ybapi.CacheConfig{Type: "redis"},
		})
		require.ErrorIs(t, err, ybapi.ErrUnsupportedCacheType)
	})

	t.Run("exposes resource clients", func(t *testing.T) {
		t.Parallel()

		client, err := New(&ybapi.Config{APIEndpoint: "https://cloud.example.com/api"})
		require.NoError(t, err)

		assert.NotNil(t, client.Tasks())
		assert.NotNil(t, client.ScheduledTasks())
		assert.NotNil(t, client.SoftwareReleases())
		assert.NotNil(t, client.PITR())
		assert.NotNil(t, client.Voyager())
		assert.NotNil(t, client.Queries())
		assert.NotNil(t, client.Mutations())
	})
}

func TestNewWithTransport(t *testing.T) {
	t.Parallel()

	var seen []*ybapi.Request

	client, err := NewWithTransport(nil, ybapi.TransportFunc(
		func(_ context.Context, req *ybapi.Request) (json.RawMessage, error) {
			seen = append(seen, req)

			return json.RawMessage(`{"schedules":[{"id":7,"databaseKeyspace":"yugabyte"}]}`), nil
		},
	))
	require.NoError(t, err)

	schedules, err := client.PITR().ListSchedules(context.Background())
	require.NoError(t, err)
	require.Len(t, schedules.Schedules, 1)
	assert.Equal(t, 7, schedules.Schedules[0].ID)

	require.Len(t, seen, 1)
	assert.Equal(t, "GetPITRSchedules", seen[0].Operation)
	assert.Equal(t, http.MethodGet, seen[0].Method)
	assert.Equal(t, "/pitr", seen[0].Path)
}

func TestOperations(t *testing.T) {
	t.Parallel()

	ops := Operations()
	require.Len(t, ops, 8)

	names := make(map[string]bool, len(ops))

	for _, op := range ops {
		assert.False(t, names[op.Name()], "duplicate operation %s", op.Name())
		names[op.Name()] = true
		assert.Equal(t, 1, op.Version())
	}

	assert.True(t, RunScheduledTask.IsMutation())
	assert.False(t, ListTasksAll.IsMutation())
	assert.Equal(t, "/v1/private/accounts/{accountId}/tasks", ListTasksAll.Resource())
}

func TestClient_Close(t *testing.T) {
	t.Parallel()

	client, err := New(&ybapi.Config{
		APIEndpoint: "https://cloud.example.com/api",
		Cache:       &ybapi.CacheConfig{Type: ybapi.CacheTypeNone},
	})
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	collector := ybapi.NewMetricsCollector()

	chain := ybapi.NewInterceptorChain()
	chain.AddRequestInterceptor(ybapi.HeaderInterceptor(map[string]string{"X-Tenant": "acme"}))
	chain.AddRequestInterceptor(ybapi.MetricsRequestInterceptor(collector))
	chain.AddResponseInterceptor(ybapi.MetricsResponseInterceptor(collector))

	client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "acme", request.Header.Get("X-Tenant"))
		writeJSON(writer, http.StatusOK, ybapi.PITRSchedulesResponse{})
	}, func(config *ybapi.Config) {
		config.Interceptors = chain
	})

	_, err := client.PITR().ListSchedules(context.Background())
	require.NoError(t, err)

	metrics, ok := collector.GetMetrics("GET GetPITRSchedules")
	require.True(t, ok)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(0), metrics.TotalErrors)
}
