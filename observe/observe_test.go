package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "minimal",
			cfg:  Config{ServiceName: "viewkit"},
		},
		{
			name:    "missing service name",
			cfg:     Config{},
			wantErr: ErrMissingServiceName,
		},
		{
			name: "bad tracing exporter",
			cfg: Config{ServiceName: "viewkit", Tracing: TracingConfig{
				Enabled: true, Exporter: "zipkin", SamplePct: 1,
			}},
			wantErr: ErrInvalidTracingExporter,
		},
		{
			name: "sample pct out of range",
			cfg: Config{ServiceName: "viewkit", Tracing: TracingConfig{
				Enabled: true, Exporter: "none", SamplePct: 1.5,
			}},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name: "disabled tracing skips checks",
			cfg: Config{ServiceName: "viewkit", Tracing: TracingConfig{
				Enabled: false, Exporter: "zipkin", SamplePct: 9,
			}},
		},
		{
			name: "bad metrics exporter",
			cfg: Config{ServiceName: "viewkit", Metrics: MetricsConfig{
				Enabled: true, Exporter: "statsd",
			}},
			wantErr: ErrInvalidMetricsExporter,
		},
		{
			name: "bad log level",
			cfg: Config{ServiceName: "viewkit", Logging: LoggingConfig{
				Enabled: true, Level: "trace",
			}},
			wantErr: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "viewkit"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Fatal("expected non-nil telemetry primitives")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestNewObserver_Enabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "viewkit",
		Version:     "test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(context.Background())

	if _, ok := obs.Logger().(*structuredLogger); !ok {
		t.Errorf("expected structured logger, got %T", obs.Logger())
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver failed: %v", err)
	}
	body, err := mw.Wrap(func(context.Context, *TemplateMeta) (string, error) {
		return "ok", nil
	})(context.Background(), &TemplateMeta{Logical: "plain"})
	if err != nil || body != "ok" {
		t.Errorf("wrapped render = %q, %v", body, err)
	}
}

func TestNewObserver_StdoutExporterUsesOutput(t *testing.T) {
	var buf bytes.Buffer
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "viewkit",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1},
		Output:      &buf,
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver failed: %v", err)
	}
	_, _ = mw.Wrap(func(context.Context, *TemplateMeta) (string, error) {
		return "ok", nil
	})(context.Background(), &TemplateMeta{Logical: "plain"})

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "view.render.plain") {
		t.Errorf("span not exported to Output: %q", buf.String())
	}
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	if _, err := NewObserver(context.Background(), Config{}); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("expected ErrMissingServiceName, got %v", err)
	}
}

func TestMiddlewareFromObserver_Nil(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("expected ErrNilObserver, got %v", err)
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Info(context.Background(), "ignored")
	if l.WithTemplate(TemplateMeta{Logical: "x"}) == nil {
		t.Fatal("WithTemplate should return non-nil logger")
	}
}
