package ybapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrMissingPathParam      = errors.New("missing required path parameter")
	ErrInvalidPathTemplate   = errors.New("invalid path template")
	ErrUnsupportedParamValue = errors.New("unsupported parameter value")
	ErrInvalidParams         = errors.New("invalid parameters")
	ErrNotMutation           = errors.New("operation is not state-changing")
	ErrPageFetchInProgress   = errors.New("page fetch already in progress")
	ErrNoMorePages           = errors.New("no more pages")
	ErrTransportRequired     = errors.New("transport is required")
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrUnexpectedStatus      = errors.New("unexpected response status")
)

// ConstructionError reports a request that could not be built locally.
// No transport call is made when it is returned.
type ConstructionError struct {
	Operation string
	Param     string
	Err       error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("building %s: %v %q", e.Operation, e.Err, e.Param)
}

// Unwrap returns the underlying error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// APIError represents an error returned by the API.
type APIError struct {
	Status int    `json:"status" yaml:"status"`
	Detail string `json:"detail" yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status: %d)", http.StatusText(e.Status), e.Status)
	}

	return fmt.Sprintf("%s (status: %d)", e.Detail, e.Status)
}

// ErrorResponse is the error envelope returned by the API.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// ParamError describes a single failed parameter validation.
type ParamError struct {
	Field   string
	Message string
}

// ValidationError collects parameter validation failures.
type ValidationError struct {
	Fields []ParamError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, field.Field+": "+field.Message)
	}

	return fmt.Sprintf("%v: %s", ErrInvalidParams, strings.Join(messages, "; "))
}

// Unwrap allows errors.Is(err, ErrInvalidParams).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}

// ParseAPIError builds an APIError from a response body and status code.
// Bodies that are not an error envelope keep the raw text as detail.
func ParseAPIError(status int, body []byte) *APIError {
	var errResp ErrorResponse

	err := json.Unmarshal(body, &errResp)
	if err == nil && errResp.Error != nil {
		if errResp.Error.Status == 0 {
			errResp.Error.Status = status
		}

		return errResp.Error
	}

	return &APIError{
		Status: status,
		Detail: strings.TrimSpace(string(body)),
	}
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsConstructionError reports whether err was raised while building a request.
func IsConstructionError(err error) bool {
	var constructionErr *ConstructionError

	return errors.As(err, &constructionErr)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}

	return false
}
