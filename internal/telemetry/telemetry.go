package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Telemetry owns the tracer and meter providers.
//
// The tracer provider always exists so spans carry IDs that log entries can
// reference. Export happens only when enabled. Exporter failures do not fail
// New; the instance is marked degraded and keeps working locally.
type Telemetry struct {
	config *Config

	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	degraded atomic.Bool
	lastErr  atomic.Pointer[error]
}

// New creates a Telemetry instance from cfg.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	t := &Telemetry{config: cfg}
	res := newResource(cfg)

	traceExporter := o.traceExporter
	if traceExporter == nil && cfg.Enabled {
		exp, err := newTraceExporter(ctx, cfg)
		if err != nil {
			t.setDegraded(wrapExporterErr("trace", err))
		} else {
			traceExporter = exp
		}
	}
	t.tracerProvider = newTracerProvider(cfg, res, traceExporter)

	if cfg.Enabled && cfg.Metrics.Enabled {
		metricExporter := o.metricExporter
		if metricExporter == nil {
			exp, err := newMetricExporter(ctx, cfg)
			if err != nil {
				t.setDegraded(wrapExporterErr("metric", err))
			} else {
				metricExporter = exp
			}
		}
		if metricExporter != nil {
			reader := sdkmetric.NewPeriodicReader(metricExporter,
				sdkmetric.WithInterval(cfg.Metrics.ExportInterval.Duration()),
			)
			t.meterProvider = newMeterProvider(res, reader)
		}
	}

	return t, nil
}

// Tracer returns a tracer for the given instrumentation scope.
func (t *Telemetry) Tracer(name string, opts ...oteltrace.TracerOption) oteltrace.Tracer {
	return t.tracerProvider.Tracer(name, opts...)
}

// Meter returns a meter for the given instrumentation scope.
// Without metric export it returns a no-op meter.
func (t *Telemetry) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if t.meterProvider == nil {
		return noop.NewMeterProvider().Meter(name, opts...)
	}
	return t.meterProvider.Meter(name, opts...)
}

// Shutdown flushes and stops both providers.
// Uses the configured timeout when ctx has no deadline.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Shutdown.Timeout.Duration())
		defer cancel()
	}

	var errs []error
	if err := t.tracerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("trace provider shutdown: %w", err))
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ForceFlush immediately exports all pending telemetry data.
func (t *Telemetry) ForceFlush(ctx context.Context) error {
	var errs []error
	if err := t.tracerProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("trace flush: %w", err))
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.ForceFlush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter flush: %w", err))
		}
	}
	return errors.Join(errs...)
}

// HealthStatus reports the export state.
type HealthStatus struct {
	Enabled  bool
	Degraded bool
	Err      error
}

// Health returns the current health status.
func (t *Telemetry) Health() HealthStatus {
	h := HealthStatus{
		Enabled:  t.config.Enabled,
		Degraded: t.degraded.Load(),
	}
	if p := t.lastErr.Load(); p != nil {
		h.Err = *p
	}
	return h
}

// setDegraded marks telemetry as degraded due to err.
func (t *Telemetry) setDegraded(err error) {
	t.degraded.Store(true)
	t.lastErr.Store(&err)
}
