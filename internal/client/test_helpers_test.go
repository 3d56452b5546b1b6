package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// Test static errors.
var (
	ErrTestSomeError = errors.New("some error")
)

// NewTestClient creates a client pointed at an httptest server running handler.
func NewTestClient(t *testing.T, handler http.HandlerFunc, configure ...func(*ybapi.Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &ybapi.Config{
		APIEndpoint: server.URL,
		AccessToken: "test-token",
	}

	for _, fn := range configure {
		fn(config)
	}

	client, err := New(config)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(writer http.ResponseWriter, status int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(v)
}

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name          string
	ExpectedPath  string
	ExpectedQuery url.Values
	StatusCode    int
	Response      interface{}
	WantErr       bool
	ErrMessage    string
	Check         func(t *testing.T, result *TResponse)
}

// RunGetTests runs table-driven tests for read operations.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	call func(ctx context.Context, client *Client) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, http.MethodGet, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.EscapedPath())
				assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))

				if testCase.ExpectedQuery != nil {
					assert.Equal(t, testCase.ExpectedQuery, request.URL.Query())
				}

				writeJSON(writer, testCase.StatusCode, testCase.Response)
			})

			result, err := call(context.Background(), client)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// apiErrorBody builds an error envelope response.
func apiErrorBody(status int, detail string) ybapi.ErrorResponse {
	return ybapi.ErrorResponse{Error: &ybapi.APIError{Status: status, Detail: detail}}
}
