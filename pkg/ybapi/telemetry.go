package ybapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	instrumentationName    = "github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
	instrumentationVersion = "0.1.0"
	metricKeyPrefix        = "ybapi."
)

// Fetch outcomes recorded on the fetch counter.
const (
	outcomeNetwork      = "network"
	outcomeDeduplicated = "deduplicated"
	outcomeCacheHit     = "cache_hit"
)

// telemetry holds the instruments shared by the query and mutation clients.
type telemetry struct {
	tracer          trace.Tracer
	fetchCounter    metric.Int64Counter
	mutationCounter metric.Int64Counter
	durationHist    metric.Float64Histogram
}

func newTelemetry(meterProvider metric.MeterProvider, tracerProvider trace.TracerProvider) *telemetry {
	if meterProvider == nil {
		meterProvider = metricnoop.NewMeterProvider()
	}

	if tracerProvider == nil {
		tracerProvider = tracenoop.NewTracerProvider()
	}

	meter := meterProvider.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))

	fetchCounter, err := meter.Int64Counter(
		metricKeyPrefix+"query.fetch.count",
		metric.WithDescription("Number of query fetches by outcome"),
		metric.WithUnit("{fetches}"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create query.fetch.count counter: %v", err))
	}

	mutationCounter, err := meter.Int64Counter(
		metricKeyPrefix+"mutation.count",
		metric.WithDescription("Number of executed mutations"),
		metric.WithUnit("{mutations}"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create mutation.count counter: %v", err))
	}

	durationHist, err := meter.Float64Histogram(
		metricKeyPrefix+"transport.duration",
		metric.WithDescription("Duration of transport calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create transport.duration histogram: %v", err))
	}

	return &telemetry{
		tracer: tracerProvider.Tracer(
			instrumentationName,
			trace.WithInstrumentationVersion(instrumentationVersion),
		),
		fetchCounter:    fetchCounter,
		mutationCounter: mutationCounter,
		durationHist:    durationHist,
	}
}

func (t *telemetry) recordFetch(ctx context.Context, operation, outcome string) {
	t.fetchCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (t *telemetry) recordMutation(ctx context.Context, operation string, err error) {
	t.mutationCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", statusLabel(err)),
	))
}

// execute runs one transport call inside a client span and records its duration.
func (t *telemetry) execute(ctx context.Context, transport Transport, req *Request) (data json.RawMessage, err error) {
	ctx, span := t.tracer.Start(ctx, req.Method+" "+req.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ybapi.operation", req.Operation),
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		),
	)

	startTime := time.Now()

	defer func() {
		duration := float64(time.Since(startTime).Milliseconds())

		t.durationHist.Record(ctx, duration, metric.WithAttributes(
			attribute.String("operation", req.Operation),
			attribute.String("status", statusLabel(err)),
		))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	return transport.Execute(ctx, req)
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}

	return "success"
}
