// pkg/zapbackend/core.go
package zapbackend

import (
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// instrumentationName names the OTEL logger the bridge writes to.
const instrumentationName = "github.com/on-site/logtree"

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.NameKey = "logger"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// newCore creates a core writing to every enabled output.
// The returned closer releases the rotated file, if any.
//
// Cores accept every standard level; per-logger filtering happens in Handle.
func newCore(cfg *Config, otelProvider log.LoggerProvider, sink zapcore.WriteSyncer) (zapcore.Core, io.Closer, error) {
	cores := make([]zapcore.Core, 0, 3)
	var closer io.Closer

	if cfg.Output.Stdout || sink != nil {
		encoder, err := NewRedactingEncoder(newEncoder(cfg.Format), cfg.Redaction)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redacting encoder: %w", err)
		}
		if sink == nil {
			sink = zapcore.AddSync(os.Stdout)
		}
		cores = append(cores, zapcore.NewCore(encoder, sink, zapcore.DebugLevel))
	}

	if cfg.Output.File.Path != "" {
		encoder, err := NewRedactingEncoder(newEncoder("json"), cfg.Redaction)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redacting encoder: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.Output.File.Path,
			MaxSize:    cfg.Output.File.MaxSizeMB,
			MaxBackups: cfg.Output.File.MaxBackups,
			MaxAge:     cfg.Output.File.MaxAgeDays,
			Compress:   cfg.Output.File.Compress,
		}
		closer = rotator
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), zapcore.DebugLevel))
	}

	if cfg.Output.OTEL && otelProvider != nil {
		otelCore := otelzap.NewCore(instrumentationName,
			otelzap.WithLoggerProvider(otelProvider),
		)
		cores = append(cores, otelCore)
	}

	if len(cores) == 0 {
		return nil, nil, fmt.Errorf("at least one output must be enabled and available")
	}

	var core zapcore.Core
	if len(cores) == 1 {
		core = cores[0]
	} else {
		core = zapcore.NewTee(cores...)
	}

	// Wrap with sampling if enabled
	core = newSampledCore(core, cfg.Sampling)

	return core, closer, nil
}
