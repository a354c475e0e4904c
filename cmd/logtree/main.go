// Package main implements the logtree CLI for emitting entries and
// inspecting how logger names resolve under a configuration.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/on-site/logtree/internal/config"
	"github.com/on-site/logtree/internal/telemetry"
	"github.com/on-site/logtree/pkg/logtree"
	"github.com/on-site/logtree/pkg/zapbackend"
)

// instrumentationName scopes the CLI tracer and meter.
const instrumentationName = "logtree.cli"

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "logtree",
		Short: "Hierarchical logger tooling",
		Long: `logtree loads a logger configuration and either writes entries through it
or reports the effective level and tracing of logger names.

Configuration is read from the --config YAML file, then LOGTREE_ environment
variables (LOGTREE_PREFIX, LOGTREE_BACKEND_LEVEL, ...).`,
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to logtree YAML config")

	cmd.AddCommand(newEmitCmd(opts))
	cmd.AddCommand(newResolveCmd(opts))
	return cmd
}

// cliConfig is the logtree file schema plus the telemetry section.
type cliConfig struct {
	logtree.Config `koanf:",squash"`
	Telemetry      telemetry.Config `koanf:"telemetry"`
}

// app is a registry over a zap backend with its telemetry.
type app struct {
	registry  *logtree.Registry
	backend   *zapbackend.Backend
	telemetry *telemetry.Telemetry
}

func loadConfig(path string) (*cliConfig, error) {
	cfg := &cliConfig{
		Config:    *logtree.NewDefaultConfig(),
		Telemetry: *telemetry.NewDefaultConfig(),
	}
	if err := config.Load(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openApp builds the registry from the configured file, writing backend
// output to out.
func openApp(ctx context.Context, opts *rootOptions, out io.Writer) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	tel, err := telemetry.New(ctx, &cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	b, err := zapbackend.New(&cfg.Backend, nil,
		zapbackend.WithWriter(zapcore.AddSync(out)),
		zapbackend.WithMeter(tel.Meter(instrumentationName)),
	)
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}
	r := logtree.NewRegistry(logtree.FromZap(b), logtree.WithPrefix(cfg.Prefix))
	r.Apply(cfg.Loggers)
	return &app{registry: r, backend: b, telemetry: tel}, nil
}

// closeApp closes a and stores the close error in *errp unless an earlier
// error is already there.
func closeApp(ctx context.Context, a *app, errp *error) {
	if err := a.Close(context.WithoutCancel(ctx)); err != nil && *errp == nil {
		*errp = fmt.Errorf("close: %w", err)
	}
}

// Close flushes the backend and shuts telemetry down.
func (a *app) Close(ctx context.Context) error {
	return errors.Join(a.backend.Close(), a.telemetry.Shutdown(ctx))
}
