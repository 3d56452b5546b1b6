package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are a transport concern; the query layer never retries.
const (
	// DefaultRetryMax is the number of retries the transport performs when
	// the caller does not configure one.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// ExtendedRetryWaitMax is the maximum wait time between retries.
	ExtendedRetryWaitMax = 30 * time.Second
)

// API versioning and pagination.
const (
	// DefaultAPIVersion is the version namespace used in cache keys.
	DefaultAPIVersion = 1

	// FirstPageCursor is the rendered form of the first-page sentinel cursor.
	FirstPageCursor = "-1"

	// DefaultPageSize is the number of items requested per page by the CLI.
	DefaultPageSize = 25

	// MaxPageSize is the largest page size accepted by list endpoints.
	MaxPageSize = 1000

	// ParamLimit is the query parameter carrying the page size.
	ParamLimit = "limit"

	// ParamContinuationToken is the query parameter carrying the cursor token.
	ParamContinuationToken = "continuation_token"
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the default number of entries in a memory cache.
	DefaultCacheSize = 1000

	// DefaultStaleTime is how long a successful response is served without
	// a new transport call. Zero means every Fetch goes to the transport.
	DefaultStaleTime = 0

	// DefaultNATSBucket is the JetStream key-value bucket used for responses.
	DefaultNATSBucket = "ybcloud_responses"

	// DefaultNATSTTL bounds how long the NATS bucket keeps an entry.
	DefaultNATSTTL = 5 * time.Minute
)

// HTTP headers.
const (
	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "ybcloud-client/1.0"

	// ContentTypeJSON is the media type for request and response bodies.
	ContentTypeJSON = "application/json"
)

// Format constants.
const (
	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"

	// FormatTable represents table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is printed for missing values.
	NotAvailable = "N/A"

	// TimestampLayout is used for table output.
	TimestampLayout = "2006-01-02 15:04:05"

	// MinimumArgumentCount is the argument count for KEY VALUE commands.
	MinimumArgumentCount = 2
)
