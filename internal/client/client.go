package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivetwenty-io/ybcloud-client/internal/auth"
	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/internal/http"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// Client implements the ybapi.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       ybapi.Logger
	cache        ybapi.Cache
	queries      *ybapi.QueryClient
	mutations    *ybapi.MutationClient

	// Resource clients
	tasks            *TasksClient
	scheduledTasks   *ScheduledTasksClient
	softwareReleases *SoftwareReleasesClient
	pitr             *PITRClient
	voyager          *VoyagerClient
}

var _ ybapi.Client = (*Client)(nil)

// createTokenManager returns a static token manager when an access token is
// configured, and nil for unauthenticated use.
func createTokenManager(config *ybapi.Config) auth.TokenManager {
	if config.AccessToken == "" {
		return nil
	}

	return auth.NewStaticTokenManager(config.AccessToken, time.Time{})
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ybapi.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new API client.
func New(config *ybapi.Config) (*Client, error) {
	if config == nil {
		return nil, ybapi.ErrConfigRequired
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a new API client with a custom token manager.
func NewWithTokenManager(config *ybapi.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, ybapi.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ybapi.ErrAPIEndpointRequired
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, createHTTPClientOptions(config)...)

	return newClient(config, httpClient, tokenManager)
}

// NewWithTransport creates a client whose queries and mutations go through
// transport instead of HTTP.
func NewWithTransport(config *ybapi.Config, transport ybapi.Transport) (*Client, error) {
	if config == nil {
		config = &ybapi.Config{}
	}

	client, err := newClientWithTransport(config, nil, nil, transport)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func newClient(config *ybapi.Config, httpClient *http.Client, tokenManager auth.TokenManager) (*Client, error) {
	return newClientWithTransport(config, httpClient, tokenManager, httpClient)
}

func newClientWithTransport(
	config *ybapi.Config, httpClient *http.Client, tokenManager auth.TokenManager, transport ybapi.Transport,
) (*Client, error) {
	cache, err := ybapi.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating response cache: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = ybapi.NoopLogger{}
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       logger,
		cache:        cache,
	}

	opts := []ybapi.Option{
		ybapi.WithCache(cache),
		ybapi.WithLogger(logger),
		ybapi.WithStaleTime(config.StaleTime),
		ybapi.WithPageSize(config.PageSize),
		ybapi.WithMeterProvider(config.MeterProvider),
		ybapi.WithTracerProvider(config.TracerProvider),
	}

	client.queries, err = ybapi.NewQueryClient(transport, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating query client: %w", err)
	}

	client.mutations, err = ybapi.NewMutationClient(transport, append(opts, ybapi.WithOnSuccess(client.invalidateAfter))...)
	if err != nil {
		return nil, fmt.Errorf("creating mutation client: %w", err)
	}

	client.initializeResourceClients()

	return client, nil
}

// invalidateAfter drops queries made stale by a successful mutation.
func (c *Client) invalidateAfter(ctx context.Context, op *ybapi.Operation, _ ybapi.Params, _ json.RawMessage) {
	if op != RunScheduledTask {
		return
	}

	err := c.queries.InvalidateResource(ctx, ListTasksAll.Resource())
	if err != nil {
		c.logger.Warn("Failed to invalidate task queries", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *Client) initializeResourceClients() {
	c.tasks = NewTasksClient(c.queries)
	c.scheduledTasks = NewScheduledTasksClient(c.mutations)
	c.softwareReleases = NewSoftwareReleasesClient(c.queries)
	c.pitr = NewPITRClient(c.queries)
	c.voyager = NewVoyagerClient(c.queries)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Close releases the response cache backend.
func (c *Client) Close() error {
	if closer, ok := c.cache.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}

// Tasks implements ybapi.Client.Tasks.
func (c *Client) Tasks() ybapi.TasksClient {
	return c.tasks
}

// ScheduledTasks implements ybapi.Client.ScheduledTasks.
func (c *Client) ScheduledTasks() ybapi.ScheduledTasksClient {
	return c.scheduledTasks
}

// SoftwareReleases implements ybapi.Client.SoftwareReleases.
func (c *Client) SoftwareReleases() ybapi.SoftwareReleasesClient {
	return c.softwareReleases
}

// PITR implements ybapi.Client.PITR.
func (c *Client) PITR() ybapi.PITRClient {
	return c.pitr
}

// Voyager implements ybapi.Client.Voyager.
func (c *Client) Voyager() ybapi.VoyagerClient {
	return c.voyager
}

// Queries implements ybapi.Client.Queries.
func (c *Client) Queries() *ybapi.QueryClient {
	return c.queries
}

// Mutations implements ybapi.Client.Mutations.
func (c *Client) Mutations() *ybapi.MutationClient {
	return c.mutations
}

// fetchAs runs a single-shot query and decodes the payload.
func fetchAs[T any](
	ctx context.Context, queries *ybapi.QueryClient, op *ybapi.Operation, params ybapi.Params, action string,
) (*T, error) {
	payload, err := queries.Fetch(ctx, op, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	out, err := ybapi.Decode[T](payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return out, nil
}

// collectPages walks every page of op and concatenates the page data.
func collectPages[T any](
	ctx context.Context, queries *ybapi.QueryClient, op *ybapi.Operation, params ybapi.Params, action string,
) ([]T, error) {
	pages, err := queries.Paginate(ctx, op, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var items []T

	for _, page := range pages {
		list, err := ybapi.Decode[ybapi.ListResponse[T]](page.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}

		items = append(items, list.Data...)
	}

	return items, nil
}
