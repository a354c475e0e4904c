package zapbackend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log/noop"
	"go.uber.org/zap/zapcore"
)

func TestNewCore_StdoutOnly(t *testing.T) {
	cfg := NewDefaultConfig()

	core, closer, err := newCore(cfg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, core)
	assert.Nil(t, closer)
}

func TestNewCore_OTELWithoutProvider(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.OTEL = true

	// Should succeed with stdout, skip OTEL if provider nil
	core, _, err := newCore(cfg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, core)
}

func TestNewCore_OTELOnly(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.Stdout = false
	cfg.Output.OTEL = true

	b, err := New(cfg, noop.NewLoggerProvider())
	require.NoError(t, err)

	// noop provider swallows the entry; the call must not fail
	b.Handle("logtree.Otel").Log(context.Background(), zapcore.InfoLevel, "bridged", nil)
	assert.NoError(t, b.Sync())
}

func TestNewCore_NoOutputs(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.Stdout = false
	cfg.Output.OTEL = true

	// OTEL requested but no provider available
	_, _, err := newCore(cfg, nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least one output")
}

func TestNewCore_FileReturnsCloser(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.File.Path = t.TempDir() + "/out.log"

	_, closer, err := newCore(cfg, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}
