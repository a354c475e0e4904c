// Package telemetry provides the OpenTelemetry providers behind logtree's
// trace correlation and entry metrics.
//
// # Overview
//
// Telemetry builds an OpenTelemetry TracerProvider and, when export is
// enabled, a MeterProvider with OTLP exporters (gRPC or HTTP/protobuf).
// Log entries written inside a span carry its trace_id and span_id, and the
// zap backend counts entries on a meter from this package.
//
// # Usage
//
//	tel, err := telemetry.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(ctx)
//
//	ctx, span := tel.Tracer("logtree.cli").Start(ctx, "emit")
//	defer span.End()
//	log.Info(ctx, "inside span")
//
// # Configuration
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: grpc
//	  service_name: "logtree"
//	  sampling:
//	    rate: 1.0
//	  metrics:
//	    enabled: true
//	    export_interval: "15s"
//
// # Testing
//
//	tt := telemetry.NewTestTelemetry()
//	_, span := tt.Tracer("test").Start(ctx, "test-span")
//	span.End()
//	tt.AssertSpanExists(t, "test-span")
package telemetry
