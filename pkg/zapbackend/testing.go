// pkg/zapbackend/testing.go
package zapbackend

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestBackend wraps Backend with test observation capabilities.
type TestBackend struct {
	*Backend
	observed *observer.ObservedLogs
}

// NewTestBackend creates a backend for testing with full observation.
// The root level is debug so every standard level is enabled until set.
func NewTestBackend() *TestBackend {
	core, observed := observer.New(zapcore.DebugLevel)
	cfg := NewDefaultConfig()
	cfg.Level = zapcore.DebugLevel
	return &TestBackend{
		Backend:  newBackend(cfg, zap.New(core, zap.WithFatalHook(continueHook{})), nil),
		observed: observed,
	}
}

// All returns all logged entries.
func (t *TestBackend) All() []observer.LoggedEntry {
	return t.observed.All()
}

// Len returns the number of logged entries.
func (t *TestBackend) Len() int {
	return t.observed.Len()
}

// FilterMessage returns entries matching message substring.
func (t *TestBackend) FilterMessage(msg string) *observer.ObservedLogs {
	return t.observed.FilterMessageSnippet(msg)
}

// Reset clears all logged entries.
func (t *TestBackend) Reset() {
	t.observed.TakeAll()
}

// AssertLogged verifies a log at level containing message was logged.
func (t *TestBackend) AssertLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			return
		}
	}
	tb.Errorf("expected log at %v containing %q, logs: %+v", level, msgContains, t.observed.All())
}

// AssertNotLogged verifies no log at level containing message was logged.
func (t *TestBackend) AssertNotLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			tb.Errorf("unexpected log at %v containing %q", level, msgContains)
		}
	}
}

// AssertField verifies a field with key and value exists in message.
func (t *TestBackend) AssertField(tb testing.TB, msg, key string, expected interface{}) {
	tb.Helper()
	for _, entry := range t.FilterMessage(msg).All() {
		for _, field := range entry.Context {
			if field.Key == key {
				// Compare based on field type
				if field.Type == zapcore.StringType && field.String == expected {
					return
				}
				if reflect.DeepEqual(field.Interface, expected) {
					return
				}
			}
		}
	}
	tb.Errorf("field %q=%v not found in message %q", key, expected, msg)
}

// AssertNoField verifies no entry for message carries key.
func (t *TestBackend) AssertNoField(tb testing.TB, msg, key string) {
	tb.Helper()
	for _, entry := range t.FilterMessage(msg).All() {
		for _, field := range entry.Context {
			if field.Key == key {
				tb.Errorf("unexpected field %q in message %q", key, msg)
			}
		}
	}
}
