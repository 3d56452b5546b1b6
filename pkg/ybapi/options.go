package ybapi

import (
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// options is the configuration shared by QueryClient and MutationClient.
type options struct {
	cache          Cache
	staleTime      time.Duration
	pageSize       int
	logger         Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	onSuccess      []MutationHook
}

// Option configures a QueryClient or MutationClient.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = NoopLogger{}
	}

	if o.cache == nil {
		o.cache = NewMemoryCache(0)
	}

	return o
}

// WithStaleTime sets how long a successful result is served without a new
// transport call. Zero, the default, disables fresh-data serving.
func WithStaleTime(staleTime time.Duration) Option {
	return func(o *options) {
		o.staleTime = staleTime
	}
}

// WithCache sets the backend holding fresh results. Defaults to an
// unbounded MemoryCache.
func WithCache(cache Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithPageSize sets the limit sent with infinite query pages when the
// caller supplied none.
func WithPageSize(pageSize int) Option {
	return func(o *options) {
		o.pageSize = pageSize
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = provider
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = provider
	}
}

// WithOnSuccess registers a hook run after every successful mutation.
func WithOnSuccess(hook MutationHook) Option {
	return func(o *options) {
		o.onSuccess = append(o.onSuccess, hook)
	}
}
