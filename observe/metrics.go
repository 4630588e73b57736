package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/viewkit/cache"
)

// Metric instrument names.
const (
	MetricRenderTotal    = "view.render.total"
	MetricRenderErrors   = "view.render.errors"
	MetricRenderDuration = "view.render.duration_ms"
	MetricCacheHits      = "view.cache.hits"
	MetricCacheMisses    = "view.cache.misses"
)

// Metrics records render metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	RecordRender(ctx context.Context, meta TemplateMeta, duration time.Duration, err error)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		MetricRenderTotal,
		metric.WithDescription("Total number of template renders"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		MetricRenderErrors,
		metric.WithDescription("Total number of failed template renders"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		MetricRenderDuration,
		metric.WithDescription("Template render duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordRender counts the render and records its duration. Only the logical
// name is used as an attribute to keep cardinality bounded.
func (m *metricsImpl) RecordRender(ctx context.Context, meta TemplateMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("template.logical", meta.Logical))

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

type noopMetrics struct{}

func (noopMetrics) RecordRender(context.Context, TemplateMeta, time.Duration, error) {}

// StatsSource is anything that reports cache counters, such as a
// cache.Store or one of the cached decorators.
type StatsSource interface {
	Stats() cache.Stats
}

// RegisterCacheStats exports source's hit and miss counters as observable
// counters labelled cache.name=name. The values are read at collection time.
func RegisterCacheStats(meter metric.Meter, name string, source StatsSource) error {
	if source == nil {
		return ErrNilStatsSource
	}
	opt := metric.WithAttributes(attribute.String("cache.name", name))

	hits, err := meter.Int64ObservableCounter(
		MetricCacheHits,
		metric.WithDescription("Cache lookups served from memory"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return err
	}
	misses, err := meter.Int64ObservableCounter(
		MetricCacheMisses,
		metric.WithDescription("Cache lookups that ran the computation"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := source.Stats()
		o.ObserveInt64(hits, s.Hits, opt)
		o.ObserveInt64(misses, s.Misses, opt)
		return nil
	}, hits, misses)
	return err
}
