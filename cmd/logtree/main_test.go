package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-site/logtree/internal/telemetry"
	"github.com/on-site/logtree/pkg/zapbackend"
)

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEmit_WritesJSONEntry(t *testing.T) {
	out, _, err := executeCommand(t, "emit", "--tracing", "--context", "request.id=r-1", "Billing::Invoice", "rendered")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "rendered", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "logtree.Billing.Invoice", entry["logger"])
	assert.Equal(t, "r-1", entry["request.id"])
	assert.Contains(t, entry["fileName"], "emit.go")
}

func TestEmit_InsideSpan(t *testing.T) {
	out, _, err := executeCommand(t, "emit", "--span", "Billing", "traced")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Len(t, entry["trace_id"], 32)
	assert.Len(t, entry["span_id"], 16)
	assert.Equal(t, true, entry["trace_sampled"])
}

func TestLoadConfig_TelemetrySection(t *testing.T) {
	path := writeConfig(t, `
prefix: app
telemetry:
  service_name: billing
  sampling:
    rate: 0.5
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.Prefix)
	assert.Equal(t, "billing", cfg.Telemetry.ServiceName)
	assert.Equal(t, 0.5, cfg.Telemetry.Sampling.Rate)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint, "defaults kept")
}

func TestEmit_InvalidTelemetry(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  enabled: true
  endpoint: ""
`)

	_, _, err := executeCommand(t, "--config", path, "emit", "A", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry")
}

func TestEmit_RespectsConfiguredLevel(t *testing.T) {
	path := writeConfig(t, `
loggers:
  "Billing":
    level: error
`)

	out, _, err := executeCommand(t, "--config", path, "emit", "--level", "warn", "Billing::Invoice", "hidden")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEmit_ErrorValue(t *testing.T) {
	out, _, err := executeCommand(t, "emit", "--level", "error", "--error", "Billing", "charge failed")
	require.NoError(t, err)
	assert.Contains(t, out, `"msg":"charge failed\n`)
}

func TestEmit_InvalidLevel(t *testing.T) {
	_, _, err := executeCommand(t, "emit", "--level", "loud", "A", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown level")
}

func TestEmit_InvalidContext(t *testing.T) {
	_, _, err := executeCommand(t, "emit", "--context", "novalue", "A", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestEmit_RequiresArgs(t *testing.T) {
	_, _, err := executeCommand(t, "emit", "only-name")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	path := writeConfig(t, `
prefix: app
backend:
  level: warn
loggers:
  "Billing":
    level: error
    tracing: true
  "Billing::Invoice":
    tracing: false
`)

	out, _, err := executeCommand(t, "--config", path, "resolve", "Billing::Invoice::Render", "Shipping")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"NAME", "BACKEND", "LEVEL", "TRACING", "EXPLICIT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"(root)", "app", "warn", "false", "unset"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Billing", "app.Billing", "error", "true", "on"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Billing::Invoice", "app.Billing.Invoice", "error", "false", "off"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"Billing::Invoice::Render", "app.Billing.Invoice.Render", "error", "false", "unset"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"Shipping", "app.Shipping", "warn", "false", "unset"}, strings.Fields(lines[5]))
}

func TestResolve_MissingConfig(t *testing.T) {
	out, _, err := executeCommand(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "(root)")
}

var errSyncFailed = errors.New("sync failed")

// failingSyncer accepts writes but fails every Sync.
type failingSyncer struct{ bytes.Buffer }

func (*failingSyncer) Sync() error { return errSyncFailed }

func newFailingApp(t *testing.T) *app {
	t.Helper()
	b, err := zapbackend.New(zapbackend.NewDefaultConfig(), nil, zapbackend.WithWriter(&failingSyncer{}))
	require.NoError(t, err)
	tel, err := telemetry.New(context.Background(), telemetry.NewDefaultConfig())
	require.NoError(t, err)
	return &app{backend: b, telemetry: tel}
}

func TestCloseApp_ReportsCloseError(t *testing.T) {
	var err error
	closeApp(context.Background(), newFailingApp(t), &err)
	require.Error(t, err)
	assert.ErrorIs(t, err, errSyncFailed)
}

func TestCloseApp_KeepsEarlierError(t *testing.T) {
	earlier := errors.New("flush failed")
	err := earlier
	closeApp(context.Background(), newFailingApp(t), &err)
	assert.Same(t, earlier, err)
}
