// Package telemetry traces and counts the GitHub calls a run makes.
//
// Telemetry is off unless Settings.Enabled is set (config key
// telemetry.enabled, or EXPIRE_ISSUES_TELEMETRY_ENABLED). Spans and metrics
// go to stderr, an OTLP/HTTP collector, or both. A run is a short-lived
// process, so Shutdown must be called before exit to flush them.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationScope = "github.com/expire-issues/expire-issues"

// Settings selects the exporters. The zero value disables telemetry.
type Settings struct {
	Enabled  bool
	Stdout   bool   // Pretty-print to stderr
	Endpoint string // OTLP/HTTP collector, host:port
}

// exporters reports which sinks to build. Enabled with nothing selected
// falls back to stderr so the switch alone shows something.
func (s Settings) exporters() (stdout bool, endpoint string) {
	if !s.Enabled {
		return false, ""
	}
	if !s.Stdout && s.Endpoint == "" {
		return true, ""
	}
	return s.Stdout, s.Endpoint
}

var (
	enabled  atomic.Bool
	shutdown []func(context.Context) error

	// output receives stdout-exporter data; stderr keeps --json output clean.
	output io.Writer = os.Stderr
)

// Enabled reports whether Init installed real providers.
func Enabled() bool {
	return enabled.Load()
}

// Init installs SDK providers for s. With telemetry disabled the global
// no-op providers are left alone.
func Init(ctx context.Context, s Settings, version string) error {
	stdout, endpoint := s.exporters()
	if !stdout && endpoint == "" {
		enabled.Store(false)
		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("expire-issues"),
			semconv.ServiceVersionKey.String(version),
		),
		resource.WithProcess(),
	)
	if err != nil {
		return fmt.Errorf("telemetry: resource: %w", err)
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	metricOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if stdout {
		spans, err := stdouttrace.New(stdouttrace.WithWriter(output), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("telemetry: stdout spans: %w", err)
		}
		metrics, err := stdoutmetric.New(stdoutmetric.WithWriter(output))
		if err != nil {
			return fmt.Errorf("telemetry: stdout metrics: %w", err)
		}
		// Synchronous export: the run is over before a batch would fill.
		traceOpts = append(traceOpts, sdktrace.WithSyncer(spans))
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics)))
	}

	if endpoint != "" {
		spans, err := buildOTLPTraceExporter(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("telemetry: otlp spans: %w", err)
		}
		metrics, err := buildOTLPMetricExporter(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("telemetry: otlp metrics: %w", err)
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(spans))
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics)))
	}

	tp := sdktrace.NewTracerProvider(traceOpts...)
	mp := sdkmetric.NewMeterProvider(metricOpts...)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	shutdown = append(shutdown, tp.Shutdown, mp.Shutdown)
	enabled.Store(true)
	return nil
}

// Shutdown flushes pending spans and the final metric reading.
func Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	shutdown = nil
	enabled.Store(false)
	return errors.Join(errs...)
}

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationScope)
}

func meter() metric.Meter {
	return otel.Meter(instrumentationScope)
}
