package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/ybcloud-client/internal/auth"
	ybhttp "github.com/fivetwenty-io/ybcloud-client/internal/http"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/public/accounts/acc-1/software/tracks", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "ybcloud-client/1.0", request.Header.Get("User-Agent"))

			_, err := uuid.Parse(request.Header.Get("X-Request-ID"))
			assert.NoError(t, err)

			_ = json.NewEncoder(writer).Encode(map[string]string{"id": "track-1"})
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, &MockTokenManager{token: "test-token"})

		resp, err := client.Do(context.Background(), &ybhttp.Request{
			Method: "GET",
			Path:   "/public/accounts/acc-1/software/tracks",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "track-1", result["id"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "limit=10", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &ybhttp.Request{
			Method: "GET",
			Path:   "/tasks",
			Query:  url.Values{"limit": []string{"10"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "5", body["task_instance"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &ybhttp.Request{
			Method: "POST",
			Path:   "/private/scheduled_tasks/daily",
			Body:   map[string]string{"task_instance": "5"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":{"status":404,"detail":"Release not found"}}`))
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &ybhttp.Request{Method: "GET", Path: "/missing"})
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		apiErr := &ybapi.APIError{}
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Release not found", apiErr.Detail)
		assert.True(t, ybapi.IsNotFound(err))
	})

	t.Run("token failure stops the request", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, auth.NewStaticTokenManager("", time.Time{}))

		_, err := client.Get(context.Background(), "/pitr", nil)
		require.ErrorIs(t, err, auth.ErrNoToken)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &ybhttp.Request{
			Method:  "GET",
			Path:    "/pitr",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := ybhttp.NewClient(server.URL, nil, ybhttp.WithLogger(logger), ybhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/pitr", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Execute(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/private/scheduled_tasks/daily%2Fbackup", request.URL.EscapedPath())
		assert.Equal(t, "dry_run=true", request.URL.RawQuery)

		var body map[string]string

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, map[string]string{"task_instance": "5"}, body)

		_, _ = writer.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer server.Close()

	client := ybhttp.NewClient(server.URL, nil)

	payload, err := client.Execute(context.Background(), &ybapi.Request{
		Operation: "RunScheduledTask",
		Method:    "POST",
		Path:      "/private/scheduled_tasks/daily%2Fbackup",
		Query:     map[string]any{"dry_run": true},
		Body:      ybapi.Params{"task_instance": "5"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"ok":true}}`, string(payload))
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "intercepted", request.Header.Get("X-Trace"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector := ybapi.NewMetricsCollector()
	chain := ybapi.NewInterceptorChain()
	chain.AddRequestInterceptor(ybapi.HeaderInterceptor(map[string]string{"X-Trace": "intercepted"}))
	chain.AddRequestInterceptor(ybapi.MetricsRequestInterceptor(collector))
	chain.AddResponseInterceptor(ybapi.MetricsResponseInterceptor(collector))

	client := ybhttp.NewClient(server.URL, nil, ybhttp.WithInterceptors(chain))

	_, err := client.Do(context.Background(), &ybhttp.Request{Operation: "GetPITRSchedules", Method: "GET", Path: "/pitr"})
	require.NoError(t, err)

	metrics, ok := collector.GetMetrics("GET GetPITRSchedules")
	require.True(t, ok)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(0), metrics.TotalErrors)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*ybhttp.Client, context.Context) (*ybhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *ybhttp.Client, ctx context.Context) (*ybhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *ybhttp.Client, ctx context.Context) (*ybhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *ybhttp.Client, ctx context.Context) (*ybhttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *ybhttp.Client, ctx context.Context) (*ybhttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *ybhttp.Client, ctx context.Context) (*ybhttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := ybhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("no retries by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil, ybhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := ybhttp.NewClient(server.URL, nil, ybhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})
}
