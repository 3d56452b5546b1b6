package ybapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNewOperation(t *testing.T) {
	t.Parallel()

	t.Run("defaults method and version", func(t *testing.T) {
		t.Parallel()

		op, err := ybapi.NewOperation(ybapi.OperationSpec{Name: "GetPITRSchedules", Path: "/pitr"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, op.Method())
		assert.Equal(t, 1, op.Version())
		assert.Equal(t, "/v1/pitr", op.Resource())
		assert.False(t, op.IsMutation())
	})

	t.Run("normalizes method case", func(t *testing.T) {
		t.Parallel()

		op, err := ybapi.NewOperation(ybapi.OperationSpec{Name: "X", Method: "post", Path: "/x"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, op.Method())
		assert.True(t, op.IsMutation())
	})

	t.Run("keeps explicit version", func(t *testing.T) {
		t.Parallel()

		op, err := ybapi.NewOperation(ybapi.OperationSpec{Name: "X", Path: "/x", Version: 2})
		require.NoError(t, err)
		assert.Equal(t, "/v2/x", op.Resource())
	})

	tests := []struct {
		name string
		spec ybapi.OperationSpec
	}{
		{"empty path", ybapi.OperationSpec{Name: "X"}},
		{"unterminated placeholder", ybapi.OperationSpec{Name: "X", Path: "/a/{id", PathParams: []string{"id"}}},
		{"stray closing brace", ybapi.OperationSpec{Name: "X", Path: "/a/id}"}},
		{"empty placeholder", ybapi.OperationSpec{Name: "X", Path: "/a/{}"}},
		{"undeclared placeholder", ybapi.OperationSpec{Name: "X", Path: "/a/{id}"}},
		{"declared but unused", ybapi.OperationSpec{Name: "X", Path: "/a", PathParams: []string{"id"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ybapi.NewOperation(tc.spec)
			require.ErrorIs(t, err, ybapi.ErrInvalidPathTemplate)
		})
	}

	t.Run("MustOperation panics on invalid template", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			ybapi.MustOperation(ybapi.OperationSpec{Name: "X", Path: "/a/{id}"})
		})
	})

	t.Run("accessors return copies", func(t *testing.T) {
		t.Parallel()

		params := listTasksOp.PathParams()
		params[0] = "mutated"

		assert.Equal(t, []string{"accountId"}, listTasksOp.PathParams())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestOperation_Build(t *testing.T) {
	t.Parallel()

	t.Run("list tasks with pagination", func(t *testing.T) {
		t.Parallel()

		req, err := listTasksOp.Build(ybapi.Params{
			"accountId":          "acc1",
			"limit":              10,
			"continuation_token": "abc",
			"projectId":          nil,
		})
		require.NoError(t, err)

		assert.Equal(t, "ListTasksAll", req.Operation)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/private/accounts/acc1/tasks", req.Path)
		assert.Equal(t, map[string]any{"limit": 10, "continuation_token": "abc"}, req.Query)
		assert.Nil(t, req.Body)
		assert.Equal(t, "/private/accounts/acc1/tasks?continuation_token=abc&limit=10", req.URL())
	})

	t.Run("get release has an empty query", func(t *testing.T) {
		t.Parallel()

		req, err := getReleaseOp.Build(ybapi.Params{"accountId": "a1", "trackId": "t1", "releaseId": "r1"})
		require.NoError(t, err)

		assert.Equal(t, "/public/accounts/a1/software/tracks/t1/releases/r1", req.Path)
		assert.Empty(t, req.Query)
		assert.Empty(t, req.Values())
	})

	t.Run("undeclared parameters are ignored for reads", func(t *testing.T) {
		t.Parallel()

		req, err := getPITROp.Build(ybapi.Params{"unknown": "x"})
		require.NoError(t, err)
		assert.Empty(t, req.Query)
		assert.Nil(t, req.Body)
	})

	t.Run("reserved characters are percent-encoded", func(t *testing.T) {
		t.Parallel()

		req, err := runTaskOp.Build(ybapi.Params{"task": "daily/backup now?"})
		require.NoError(t, err)
		assert.Equal(t, "/private/scheduled_tasks/daily%2Fbackup%20now%3F", req.Path)
	})

	t.Run("missing path parameter", func(t *testing.T) {
		t.Parallel()

		_, err := getReleaseOp.Build(ybapi.Params{"accountId": "a1", "trackId": "t1"})
		require.ErrorIs(t, err, ybapi.ErrMissingPathParam)
		assert.True(t, ybapi.IsConstructionError(err))

		var constructionErr *ybapi.ConstructionError
		require.ErrorAs(t, err, &constructionErr)
		assert.Equal(t, "releaseId", constructionErr.Param)
		assert.Equal(t, "GetRelease", constructionErr.Operation)
	})

	t.Run("nil path parameter counts as missing", func(t *testing.T) {
		t.Parallel()

		var account *string

		_, err := listTasksOp.Build(ybapi.Params{"accountId": account})
		require.ErrorIs(t, err, ybapi.ErrMissingPathParam)
	})

	t.Run("unsupported value", func(t *testing.T) {
		t.Parallel()

		_, err := listTasksOp.Build(ybapi.Params{"accountId": map[string]string{"a": "b"}})
		require.ErrorIs(t, err, ybapi.ErrUnsupportedParamValue)
	})

	t.Run("mutation body excludes path parameters", func(t *testing.T) {
		t.Parallel()

		params := ybapi.Params{"task": "daily_backup", "task_instance": "i-1", "note": nil}

		req, err := runTaskOp.Build(params)
		require.NoError(t, err)
		assert.Equal(t, "/private/scheduled_tasks/daily_backup", req.Path)
		assert.Equal(t, ybapi.Params{"task_instance": "i-1"}, req.Body)
		assert.Equal(t, ybapi.Params{"task": "daily_backup", "task_instance": "i-1", "note": nil}, params)
	})

	t.Run("mutation without remaining fields has no body", func(t *testing.T) {
		t.Parallel()

		req, err := runTaskOp.Build(ybapi.Params{"task": "daily_backup"})
		require.NoError(t, err)
		assert.Nil(t, req.Body)
	})

	t.Run("slices become repeated query keys", func(t *testing.T) {
		t.Parallel()

		req, err := listTasksOp.Build(ybapi.Params{"accountId": "a", "task_type": []string{"A", "B"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, req.Values()["task_type"])
	})

	t.Run("pointer values are dereferenced", func(t *testing.T) {
		t.Parallel()

		req, err := listTasksOp.Build(ybapi.Params{"accountId": stringPtr("a"), "locking": boolPtr(false)})
		require.NoError(t, err)
		assert.Equal(t, "/private/accounts/a/tasks", req.Path)
		assert.Equal(t, "false", req.Values().Get("locking"))
	})
}
