package ybapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	t.Run("error envelope", func(t *testing.T) {
		t.Parallel()

		err := ybapi.ParseAPIError(http.StatusNotFound, []byte(`{"error":{"status":404,"detail":"Task not found"}}`))
		assert.Equal(t, http.StatusNotFound, err.Status)
		assert.Equal(t, "Task not found", err.Detail)
		assert.Equal(t, "Task not found (status: 404)", err.Error())
	})

	t.Run("envelope without status", func(t *testing.T) {
		t.Parallel()

		err := ybapi.ParseAPIError(http.StatusForbidden, []byte(`{"error":{"detail":"nope"}}`))
		assert.Equal(t, http.StatusForbidden, err.Status)
	})

	t.Run("plain body", func(t *testing.T) {
		t.Parallel()

		err := ybapi.ParseAPIError(http.StatusBadGateway, []byte("upstream down\n"))
		assert.Equal(t, "upstream down", err.Detail)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		err := ybapi.ParseAPIError(http.StatusServiceUnavailable, nil)
		assert.Equal(t, "Service Unavailable (status: 503)", err.Error())
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	wrap := func(status int) error {
		return fmt.Errorf("listing tasks: %w", &ybapi.APIError{Status: status})
	}

	assert.True(t, ybapi.IsNotFound(wrap(http.StatusNotFound)))
	assert.False(t, ybapi.IsNotFound(wrap(http.StatusForbidden)))
	assert.True(t, ybapi.IsUnauthorized(wrap(http.StatusUnauthorized)))
	assert.True(t, ybapi.IsForbidden(wrap(http.StatusForbidden)))
	assert.False(t, ybapi.IsNotFound(errBoom))

	constructionErr := fmt.Errorf("wrapped: %w", &ybapi.ConstructionError{
		Operation: "GetRelease",
		Param:     "releaseId",
		Err:       ybapi.ErrMissingPathParam,
	})
	assert.True(t, ybapi.IsConstructionError(constructionErr))
	require.ErrorIs(t, constructionErr, ybapi.ErrMissingPathParam)
	assert.Contains(t, constructionErr.Error(), `building GetRelease: missing required path parameter "releaseId"`)
	assert.False(t, ybapi.IsConstructionError(errBoom))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := &ybapi.ValidationError{Fields: []ybapi.ParamError{
		{Field: "accountId", Message: "required"},
		{Field: "limit", Message: "must be at most 1000"},
	}}

	require.ErrorIs(t, err, ybapi.ErrInvalidParams)
	assert.Equal(t, "invalid parameters: accountId: required; limit: must be at most 1000", err.Error())
}
