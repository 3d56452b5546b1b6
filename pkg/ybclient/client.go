package ybclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/ybcloud-client/internal/client"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// New creates a new YugabyteDB Managed API client. config is not modified.
func New(config *ybapi.Config) (ybapi.Client, error) {
	if config == nil {
		return nil, ybapi.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ybapi.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	apiClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NormalizeEndpoint trims a trailing slash and adds "https://" when the
// endpoint has no scheme.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(endpoint string) (ybapi.Client, error) {
	return New(&ybapi.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(endpoint, token string) (ybapi.Client, error) {
	return New(&ybapi.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}
