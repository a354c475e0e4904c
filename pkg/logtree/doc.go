// Package logtree provides named, hierarchical loggers over a leveled
// backend.
//
// # Overview
//
// Logical names use "::" between segments ("Billing::Invoice::Render").
// A Registry holds exactly one Logger per name for its whole lifetime, so
// any two calls to Get with the same name return the same pointer.
// The backend sees the name as "<prefix>.Billing.Invoice.Render"; the root
// logger, with no segments, is the prefix alone.
//
// # Usage
//
//	cfg, err := logtree.LoadConfig("logtree.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := logtree.Setup(cfg); err != nil {
//	    return err
//	}
//	defer logtree.Shutdown()
//
//	log := logtree.Get("Billing::Invoice", logtree.Attributes{"tracing": true})
//	log.Info(ctx, "rendered")
//	log.Debug(ctx, func() string { return expensiveDump() })
//
// # Levels and Tracing
//
// Levels live in the backend, which resolves an unset level from the nearest
// ancestor. Tracing lives on the Logger: an unset logger inherits from its
// parent, the root defaults to off. With tracing on, every enabled entry
// carries the caller's fileName, methodOrFunctionName and lineNumber in the
// diagnostic context (see package mdc). With tracing off those keys are
// written as empty strings.
//
// # Laziness
//
// A disabled level is a no-op: thunks are not called, nothing is formatted
// and the diagnostic context is not touched.
//
// # Concurrency Safety
//
// Registry and Logger are safe for concurrent use. Each goroutine should log
// with its own diagnostic context (mdc.NewContext) when it puts values of
// its own.
package logtree
