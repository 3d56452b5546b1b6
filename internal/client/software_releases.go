package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// SoftwareReleasesClient implements ybapi.SoftwareReleasesClient.
type SoftwareReleasesClient struct {
	queries *ybapi.QueryClient
}

// NewSoftwareReleasesClient creates a new software releases client.
func NewSoftwareReleasesClient(queries *ybapi.QueryClient) *SoftwareReleasesClient {
	return &SoftwareReleasesClient{queries: queries}
}

// GetRelease implements ybapi.SoftwareReleasesClient.GetRelease.
func (c *SoftwareReleasesClient) GetRelease(
	ctx context.Context, params *ybapi.GetReleaseParams,
) (*ybapi.SoftwareReleaseResponse, error) {
	if params == nil {
		params = &ybapi.GetReleaseParams{}
	}

	bag, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("getting release: %w", err)
	}

	return fetchAs[ybapi.SoftwareReleaseResponse](ctx, c.queries, GetRelease, bag, "getting release")
}

// GetTrack implements ybapi.SoftwareReleasesClient.GetTrack.
func (c *SoftwareReleasesClient) GetTrack(
	ctx context.Context, params *ybapi.GetTrackParams,
) (*ybapi.SoftwareTrackResponse, error) {
	if params == nil {
		params = &ybapi.GetTrackParams{}
	}

	bag, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("getting track: %w", err)
	}

	return fetchAs[ybapi.SoftwareTrackResponse](ctx, c.queries, GetTrackByID, bag, "getting track")
}

// ListReleases implements ybapi.SoftwareReleasesClient.ListReleases.
func (c *SoftwareReleasesClient) ListReleases(
	ctx context.Context, params *ybapi.ListReleasesParams,
) (*ybapi.SoftwareReleaseListResponse, error) {
	bag, err := listReleasesParams(params)
	if err != nil {
		return nil, err
	}

	return fetchAs[ybapi.SoftwareReleaseListResponse](ctx, c.queries, ListReleases, bag, "listing releases")
}

// ListAllReleases implements ybapi.SoftwareReleasesClient.ListAllReleases.
func (c *SoftwareReleasesClient) ListAllReleases(
	ctx context.Context, params *ybapi.ListReleasesParams,
) ([]ybapi.SoftwareRelease, error) {
	bag, err := listReleasesParams(params)
	if err != nil {
		return nil, err
	}

	return collectPages[ybapi.SoftwareRelease](ctx, c.queries, ListReleases, bag, "listing all releases")
}

// ListTracks implements ybapi.SoftwareReleasesClient.ListTracks.
func (c *SoftwareReleasesClient) ListTracks(
	ctx context.Context, params *ybapi.ListTracksParams,
) (*ybapi.SoftwareTrackListResponse, error) {
	if params == nil {
		params = &ybapi.ListTracksParams{}
	}

	bag, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}

	return fetchAs[ybapi.SoftwareTrackListResponse](ctx, c.queries, ListTracksForAccount, bag, "listing tracks")
}

func listReleasesParams(params *ybapi.ListReleasesParams) (ybapi.Params, error) {
	if params == nil {
		params = &ybapi.ListReleasesParams{}
	}

	bag, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	return bag, nil
}
