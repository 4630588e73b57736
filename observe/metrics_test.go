package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jonwraymond/viewkit/cache"
)

func newTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	if m == nil {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_RecordRender(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantErrors int64
	}{
		{name: "success", err: nil, wantErrors: 0},
		{name: "failure", err: errors.New("boom"), wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, mp := newTestMeter()
			m, err := newMetrics(mp.Meter("test"))
			if err != nil {
				t.Fatalf("newMetrics failed: %v", err)
			}

			m.RecordRender(context.Background(), TemplateMeta{Logical: "plain"}, 5*time.Millisecond, tt.err)

			rm := collect(t, reader)
			if got := sumOf(t, findMetric(rm, MetricRenderTotal)); got != 1 {
				t.Errorf("%s = %d, want 1", MetricRenderTotal, got)
			}
			if got := sumOf(t, findMetric(rm, MetricRenderErrors)); got != tt.wantErrors {
				t.Errorf("%s = %d, want %d", MetricRenderErrors, got, tt.wantErrors)
			}

			hist := findMetric(rm, MetricRenderDuration)
			if hist == nil {
				t.Fatalf("%s not found", MetricRenderDuration)
			}
			data, ok := hist.Data.(metricdata.Histogram[float64])
			if !ok || len(data.DataPoints) != 1 || data.DataPoints[0].Count != 1 {
				t.Errorf("unexpected histogram data: %+v", hist.Data)
			}
		})
	}
}

func TestMetrics_LogicalAttribute(t *testing.T) {
	reader, mp := newTestMeter()
	m, _ := newMetrics(mp.Meter("test"))

	m.RecordRender(context.Background(), TemplateMeta{Logical: "posts/show", Path: "views/posts/show.html.tmpl"}, time.Millisecond, nil)

	sum := findMetric(collect(t, reader), MetricRenderTotal).Data.(metricdata.Sum[int64])
	v, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("template.logical"))
	if !ok || v.AsString() != "posts/show" {
		t.Errorf("template.logical = %v", v)
	}
	if _, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("template.path")); ok {
		t.Error("template.path should not be a metric attribute")
	}
}

type fixedStats cache.Stats

func (f fixedStats) Stats() cache.Stats { return cache.Stats(f) }

func TestRegisterCacheStats(t *testing.T) {
	reader, mp := newTestMeter()
	meter := mp.Meter("test")

	if err := RegisterCacheStats(meter, "templates", fixedStats{Hits: 7, Misses: 3}); err != nil {
		t.Fatalf("RegisterCacheStats failed: %v", err)
	}
	if err := RegisterCacheStats(meter, "paths", fixedStats{Hits: 1, Misses: 2}); err != nil {
		t.Fatalf("RegisterCacheStats failed: %v", err)
	}

	rm := collect(t, reader)
	if got := sumOf(t, findMetric(rm, MetricCacheHits)); got != 8 {
		t.Errorf("%s = %d, want 8", MetricCacheHits, got)
	}
	if got := sumOf(t, findMetric(rm, MetricCacheMisses)); got != 5 {
		t.Errorf("%s = %d, want 5", MetricCacheMisses, got)
	}
}

func TestRegisterCacheStats_LiveStore(t *testing.T) {
	reader, mp := newTestMeter()
	store := cache.NewMemoryStore[string, int]()

	if err := RegisterCacheStats(mp.Meter("test"), "live", store); err != nil {
		t.Fatalf("RegisterCacheStats failed: %v", err)
	}

	compute := func() (int, error) { return 1, nil }
	_, _ = store.Fetch("a", compute)
	_, _ = store.Fetch("a", compute)
	_, _ = store.Fetch("b", compute)

	rm := collect(t, reader)
	if got := sumOf(t, findMetric(rm, MetricCacheHits)); got != 1 {
		t.Errorf("hits = %d, want 1", got)
	}
	if got := sumOf(t, findMetric(rm, MetricCacheMisses)); got != 2 {
		t.Errorf("misses = %d, want 2", got)
	}
}

func TestRegisterCacheStats_NilSource(t *testing.T) {
	_, mp := newTestMeter()
	if err := RegisterCacheStats(mp.Meter("test"), "x", nil); !errors.Is(err, ErrNilStatsSource) {
		t.Errorf("expected ErrNilStatsSource, got %v", err)
	}
}
