package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/on-site/logtree/pkg/logtree"
	"github.com/on-site/logtree/pkg/mdc"
)

type emitOptions struct {
	level   string
	tracing bool
	asError bool
	span    bool
	context []string
}

func newEmitCmd(root *rootOptions) *cobra.Command {
	opts := &emitOptions{}
	cmd := &cobra.Command{
		Use:   "emit <name> <message>",
		Short: "Write one entry through a named logger",
		Long: `Write one entry through the logger for a "::" separated name.

Examples:
  # Info entry on Billing::Invoice
  logtree emit Billing::Invoice "rendered"

  # Warn entry with caller location and a context value
  logtree emit --level warn --tracing --context request.id=r-1 Billing "slow"

  # Log the message as an error with a stack
  logtree emit --level error --error Billing "charge failed"

  # Correlate with a trace
  logtree emit --span Billing "traced"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, root, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&opts.level, "level", "info", "entry level (debug, info, warn, error, fatal)")
	cmd.Flags().BoolVar(&opts.tracing, "tracing", false, "set tracing on the logger before writing")
	cmd.Flags().BoolVar(&opts.asError, "error", false, "log the message as an error value")
	cmd.Flags().BoolVar(&opts.span, "span", false, "write the entry inside a trace span")
	cmd.Flags().StringArrayVar(&opts.context, "context", nil, "diagnostic context entry key=value (repeatable)")
	return cmd
}

func runEmit(cmd *cobra.Command, root *rootOptions, opts *emitOptions, name, message string) (err error) {
	level, err := logtree.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	values := make(map[string]string, len(opts.context))
	for _, kv := range opts.context {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --context %q, want key=value", kv)
		}
		values[key] = value
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, root, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeApp(ctx, a, &err)

	ctx = mdc.NewContext(ctx)
	m := mdc.FromContext(ctx)
	for k, v := range values {
		m.Put(k, v)
	}

	if opts.span {
		var span trace.Span
		ctx, span = a.telemetry.Tracer(instrumentationName).Start(ctx, "emit",
			trace.WithAttributes(attribute.String("logger", name)),
		)
		defer span.End()
	}

	l := a.registry.Get(name)
	if cmd.Flags().Changed("tracing") {
		l.SetTracing(logtree.TracingOf(opts.tracing))
	}

	var v any = message
	if opts.asError {
		v = errors.New(message)
	}
	l.Log(ctx, level, v)
	return l.Flush()
}
