package client

import (
	"context"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// PITRClient implements ybapi.PITRClient.
type PITRClient struct {
	queries *ybapi.QueryClient
}

// NewPITRClient creates a new PITR client.
func NewPITRClient(queries *ybapi.QueryClient) *PITRClient {
	return &PITRClient{queries: queries}
}

// ListSchedules implements ybapi.PITRClient.ListSchedules.
func (c *PITRClient) ListSchedules(ctx context.Context) (*ybapi.PITRSchedulesResponse, error) {
	return fetchAs[ybapi.PITRSchedulesResponse](ctx, c.queries, GetPITRSchedules, nil, "listing PITR schedules")
}
