package logtree

import (
	"go.uber.org/zap/zapcore"

	"github.com/on-site/logtree/pkg/zapbackend"
)

// Level is a logging severity.
type Level = zapcore.Level

// Standard severities, lowest first.
const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

// ParseLevel parses debug, info, warn (or warning), error and fatal.
func ParseLevel(s string) (Level, error) {
	return zapbackend.ParseLevel(s)
}
