package logtree

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// render converts a logged value to a message and an optional cause.
// Thunks are called here, so only after the level check.
func render(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case func() any:
		return render(x())
	case func() string:
		return x(), nil
	case func() error:
		if err := x(); err != nil {
			return formatError(err)
		}
		return "", nil
	case error:
		return formatError(x)
	case string:
		return x, nil
	default:
		return fmt.Sprint(x), nil
	}
}

// formatError appends the outermost recorded stack to the error text.
// The cause is the innermost wrapped error when it is foreign, meaning it
// differs from err and records no stack of its own.
//
// A typed nil pointer renders as "<nil>" with no cause.
func formatError(err error) (string, error) {
	if isNilPointer(err) {
		return "<nil>", nil
	}
	msg := err.Error()
	if st := outermostStack(err); st != nil {
		msg += fmt.Sprintf("%+v", st)
	}
	return msg, foreignCause(err)
}

func outermostStack(err error) errors.StackTrace {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

func foreignCause(err error) error {
	root := err
	for next := errors.Unwrap(root); next != nil; next = errors.Unwrap(root) {
		root = next
	}
	if root == err {
		return nil
	}
	if _, ok := root.(stackTracer); ok {
		return nil
	}
	return root
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
