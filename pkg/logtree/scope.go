package logtree

import (
	"context"
	"strconv"

	"github.com/on-site/logtree/pkg/mdc"
)

// Diagnostic context keys set around each enabled entry.
const (
	KeyFileName   = "fileName"
	KeyMethodName = "methodOrFunctionName"
	KeyLineNumber = "lineNumber"
)

var scopeKeys = [...]string{KeyFileName, KeyMethodName, KeyLineNumber}

// callerValues returns the caller location, or empty strings when tracing
// is off so stale values from an outer scope are overwritten.
func callerValues(tracing bool) [len(scopeKeys)]string {
	var values [len(scopeKeys)]string
	if !tracing {
		return values
	}
	if c, ok := locateCaller(); ok {
		values[0] = c.file
		values[1] = c.function
		values[2] = strconv.Itoa(c.line)
	}
	return values
}

// withCallerContext runs fn with caller keys set in a diagnostic context
// derived from ctx. The derived Map starts as a copy of the one carried by
// ctx, so the caller's Map is never written and concurrent calls sharing
// ctx do not see each other's keys.
func withCallerContext(ctx context.Context, tracing bool, fn func(context.Context)) {
	if ctx == nil {
		ctx = context.Background()
	}
	values := callerValues(tracing)
	ctx = mdc.NewContext(ctx)
	m := mdc.FromContext(ctx)
	for i, key := range scopeKeys {
		m.Put(key, values[i])
	}
	fn(ctx)
}
