package ybapi

import (
	"encoding/json"
	"fmt"
)

// PagingLinks holds the navigation links of a list response.
type PagingLinks struct {
	Self string  `json:"self"           yaml:"self"`
	Next *string `json:"next,omitempty" yaml:"next,omitempty"`
}

// PagingMetadata is the _metadata block of a list response.
type PagingMetadata struct {
	ContinuationToken *string     `json:"continuation_token" yaml:"continuation_token"`
	Links             PagingLinks `json:"links"              yaml:"links"`
}

// ListResponse represents a cursor-paginated list response.
type ListResponse[T any] struct {
	Data     []T            `json:"data"      yaml:"data"`
	Metadata PagingMetadata `json:"_metadata" yaml:"_metadata"`
}

// NextToken returns the continuation token, or "" on the last page.
func (l *ListResponse[T]) NextToken() string {
	if l.Metadata.ContinuationToken == nil {
		return ""
	}

	return *l.Metadata.ContinuationToken
}

// Resource is the spec/info envelope used by single-resource responses.
type Resource[S, I any] struct {
	Spec *S `json:"spec,omitempty" yaml:"spec,omitempty"`
	Info *I `json:"info,omitempty" yaml:"info,omitempty"`
}

// ResourceResponse wraps a single resource in a data envelope.
type ResourceResponse[T any] struct {
	Data T `json:"data" yaml:"data"`
}

// ContinuationToken extracts _metadata.continuation_token from a list
// payload. It returns "" when the token is absent, null, or the payload is
// not a list envelope.
func ContinuationToken(payload json.RawMessage) string {
	var envelope struct {
		Metadata *PagingMetadata `json:"_metadata"`
	}

	err := json.Unmarshal(payload, &envelope)
	if err != nil || envelope.Metadata == nil || envelope.Metadata.ContinuationToken == nil {
		return ""
	}

	return *envelope.Metadata.ContinuationToken
}

// Decode unmarshals an opaque payload into T.
func Decode[T any](payload json.RawMessage) (*T, error) {
	var out T

	err := json.Unmarshal(payload, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &out, nil
}
