// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability exposes per-stage pipeline timings through the otel meter,
// exported on the same Prometheus registry as the counters in common/metrics.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	stageDuration otelmetric.Float64Histogram
	requests      otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	stageDuration, _ := meter.Float64Histogram(
		"pipeline.stage.duration",
		otelmetric.WithDescription("Duration of one pipeline stage"),
		otelmetric.WithUnit("ms"),
	)

	requests, _ := meter.Int64Counter(
		"pipeline.requests",
		otelmetric.WithDescription("Chat requests processed"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		stageDuration: stageDuration,
		requests:      requests,
	}
}

// RecordStage records one stage's wall-clock time.
func (o *Observability) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if o.stageDuration != nil {
		o.stageDuration.Record(ctx, float64(d.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("stage", stage),
		))
	}
}

// RecordRequest counts one processed request by outcome path.
func (o *Observability) RecordRequest(ctx context.Context, path string) {
	if o.requests != nil {
		o.requests.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("path", path),
		))
	}
}

// Shutdown flushes the meter provider.
func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
