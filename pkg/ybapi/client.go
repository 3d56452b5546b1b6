package ybapi

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// TasksClient lists account tasks.
type TasksClient interface {
	List(ctx context.Context, params *ListTasksParams) (*TaskListResponse, error)
	ListAll(ctx context.Context, params *ListTasksParams) ([]TaskData, error)
	Infinite(params *ListTasksParams) (*InfiniteQuery, error)
}

// ScheduledTasksClient triggers scheduled tasks.
type ScheduledTasksClient interface {
	Run(ctx context.Context, params *RunScheduledTaskParams) (*RunScheduledTaskResponse, error)
}

// SoftwareReleasesClient reads release tracks and releases.
type SoftwareReleasesClient interface {
	GetRelease(ctx context.Context, params *GetReleaseParams) (*SoftwareReleaseResponse, error)
	GetTrack(ctx context.Context, params *GetTrackParams) (*SoftwareTrackResponse, error)
	ListReleases(ctx context.Context, params *ListReleasesParams) (*SoftwareReleaseListResponse, error)
	ListAllReleases(ctx context.Context, params *ListReleasesParams) ([]SoftwareRelease, error)
	ListTracks(ctx context.Context, params *ListTracksParams) (*SoftwareTrackListResponse, error)
}

// PITRClient reads point-in-time-recovery schedules.
type PITRClient interface {
	ListSchedules(ctx context.Context) (*PITRSchedulesResponse, error)
}

// VoyagerClient reads voyager migration metrics.
type VoyagerClient interface {
	GetMigrationMetrics(ctx context.Context, params *MigrationMetricsParams) (*MigrationMetricsResponse, error)
}

// Client is the YugabyteDB API client.
type Client interface {
	Tasks() TasksClient
	ScheduledTasks() ScheduledTasksClient
	SoftwareReleases() SoftwareReleasesClient
	PITR() PITRClient
	Voyager() VoyagerClient

	// Queries exposes the query cache for state inspection and invalidation.
	Queries() *QueryClient

	// Mutations exposes the mutation executor.
	Mutations() *MutationClient

	// Close releases the response cache backend.
	Close() error
}

// Config represents client configuration for building a Client.
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. Retries are performed by the HTTP transport only and are
// disabled unless RetryMax is set.
type Config struct {
	// APIEndpoint: base URL for the API (e.g., "https://cloud.yugabyte.com/api").
	// ybclient.New trims a trailing slash and adds "https://" if no scheme
	// is present.
	APIEndpoint string

	// AccessToken: API key sent as a Bearer token. Optional for endpoints
	// that do not require authentication.
	AccessToken string

	// HTTPTimeout: per-attempt HTTP timeout. Defaults to 30s.
	HTTPTimeout time.Duration
	// RetryMax: transport retries for connection errors, 429 and 5xx.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables HTTP request/response logging through Logger.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Interceptors: request/response hooks run by the HTTP transport around
	// every call, e.g. LoggingInterceptor or a MetricsCollector.
	Interceptors *InterceptorChain

	// StaleTime: how long successful query results are served without a
	// transport call. Zero disables fresh-data serving.
	StaleTime time.Duration
	// PageSize: limit sent with paginated list pages when none is given.
	PageSize int
	// Cache: backend holding fresh results. Defaults to a memory cache.
	Cache *CacheConfig

	// MeterProvider and TracerProvider receive query-layer telemetry.
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}
