// Package zapbackend is the zap-based logging backend behind logtree.
//
// # Overview
//
// A Backend owns one zap pipeline and hands out one Handle per
// dot-separated name. Handles provide:
//   - Native level inheritance along the dot hierarchy
//   - Output to stdout, a rotated file (lumberjack), and/or OpenTelemetry
//   - Diagnostic context (pkg/mdc) and trace_id/span_id written as fields
//   - Defense-in-depth field redaction
//   - Level-aware sampling (errors never sampled)
//   - A Prometheus counter of written entries per level, plus an
//     OpenTelemetry counter when built WithMeter
//
// # Usage
//
//	cfg := zapbackend.NewDefaultConfig()
//	b, err := zapbackend.New(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	h := b.Handle("logtree.Billing.Invoices")
//	h.Log(ctx, zapcore.WarnLevel, "invoice overdue", nil)
//
// # Level Inheritance
//
// A handle without an explicit level reports the level of its nearest
// ancestor that has one, falling back to Config.Level at the root:
//
//	b.Handle("logtree.Billing").SetLevel(zapcore.ErrorLevel)
//	b.Handle("logtree.Billing.Invoices").Level() // error
//
// Resolutions are cached per handle and invalidated by a generation counter
// whenever any explicit level changes.
//
// # Fatal Entries
//
// Fatal entries are written and execution continues unless
// Config.FatalExit is set.
//
// # Testing
//
// Use TestBackend for test assertions:
//
//	tb := zapbackend.NewTestBackend()
//	tb.Handle("app").Log(ctx, zapcore.InfoLevel, "started", nil)
//	tb.AssertLogged(t, zapcore.InfoLevel, "started")
//
// # Concurrency Safety
//
// Backend and Handle are safe for concurrent use.
package zapbackend
