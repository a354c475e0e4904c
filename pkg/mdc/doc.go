// Package mdc provides a mapped diagnostic context: an execution-scoped
// key-value store that log formatters read when writing an entry.
//
// # Usage
//
// Attach a Map to the context owned by one goroutine or request:
//
//	ctx = mdc.NewContext(ctx)
//	mdc.FromContext(ctx).Put("request.id", id)
//
// Goroutines spawned with work derived from ctx should call NewContext again.
// The child Map starts as a copy of the parent and never writes back to it,
// so values set on one goroutine do not leak into another.
//
// # Concurrency Safety
//
// Map is safe for concurrent use; the ownership rule above is about keeping
// values scoped, not about data races.
package mdc
