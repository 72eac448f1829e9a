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

type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	documentCounter  otelmetric.Int64Counter
	batchCounter     otelmetric.Int64Counter
	stageDuration    otelmetric.Float64Histogram
	matchesHistogram otelmetric.Int64Histogram
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

	documentCounter, _ := meter.Int64Counter(
		"documents.processed",
		otelmetric.WithDescription("Number of source documents processed"),
	)

	batchCounter, _ := meter.Int64Counter(
		"batches.processed",
		otelmetric.WithDescription("Number of analysis batches processed"),
	)

	stageDuration, _ := meter.Float64Histogram(
		"stage.duration",
		otelmetric.WithDescription("Pipeline stage duration"),
		otelmetric.WithUnit("ms"),
	)

	matchesHistogram, _ := meter.Int64Histogram(
		"lender.matches",
		otelmetric.WithDescription("Lender matches found per batch"),
	)

	return &Observability{
		meterProvider:    provider,
		meter:            meter,
		documentCounter:  documentCounter,
		batchCounter:     batchCounter,
		stageDuration:    stageDuration,
		matchesHistogram: matchesHistogram,
	}
}

func (o *Observability) RecordDocumentProcessed(ctx context.Context, institution, status string) {
	if o.documentCounter != nil {
		o.documentCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("institution", institution),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordBatchProcessed(ctx context.Context, outcome string) {
	if o.batchCounter != nil {
		o.batchCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordStageDuration(ctx context.Context, stage string, duration time.Duration) {
	if o.stageDuration != nil {
		o.stageDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("stage", stage),
		))
	}
}

func (o *Observability) RecordLenderMatches(ctx context.Context, count int) {
	if o.matchesHistogram != nil {
		o.matchesHistogram.Record(ctx, int64(count))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
