package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// VoyagerClient implements ybapi.VoyagerClient.
type VoyagerClient struct {
	queries *ybapi.QueryClient
}

// NewVoyagerClient creates a new voyager client.
func NewVoyagerClient(queries *ybapi.QueryClient) *VoyagerClient {
	return &VoyagerClient{queries: queries}
}

// GetMigrationMetrics implements ybapi.VoyagerClient.GetMigrationMetrics.
func (c *VoyagerClient) GetMigrationMetrics(
	ctx context.Context, params *ybapi.MigrationMetricsParams,
) (*ybapi.MigrationMetricsResponse, error) {
	if params == nil {
		params = &ybapi.MigrationMetricsParams{}
	}

	bag, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("getting migration metrics: %w", err)
	}

	return fetchAs[ybapi.MigrationMetricsResponse](
		ctx, c.queries, GetVoyagerDataMigrationMetrics, bag, "getting migration metrics",
	)
}
