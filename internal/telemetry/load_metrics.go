package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// LoadMetrics records dataset loads.
type LoadMetrics struct {
	duration metric.Float64Histogram
	rows     metric.Int64Gauge
	errors   metric.Int64Counter
}

// NewLoadMetrics creates the dataset load instruments on meter.
func NewLoadMetrics(meter metric.Meter) (*LoadMetrics, error) {
	duration, err := meter.Float64Histogram(
		"dataset.load.duration",
		metric.WithDescription("Time spent loading the observation table"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Gauge(
		"dataset.rows",
		metric.WithDescription("Observations in the loaded dataset"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"dataset.load.errors",
		metric.WithDescription("Failed dataset loads"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &LoadMetrics{duration: duration, rows: rows, errors: errs}, nil
}

// Record records one load attempt from source. rows is ignored when err is set.
func (m *LoadMetrics) Record(ctx context.Context, source string, rows int, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("dataset.source", source),
		attribute.Bool("dataset.success", err == nil),
	)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)

	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("dataset.source", source)))
		return
	}
	m.rows.Record(ctx, int64(rows), metric.WithAttributes(attribute.String("dataset.source", source)))
}
