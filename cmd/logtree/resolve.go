package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/on-site/logtree/pkg/logtree"
)

func newResolveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [name...]",
		Short: "Show effective level and tracing of logger names",
		Long: `Show how each name and its ancestors resolve under the configuration.

Without arguments, every logger named in the configuration is shown.

Examples:
  logtree resolve --config logtree.yaml Billing::Invoice::Render`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, root, args)
		},
	}
}

func runResolve(cmd *cobra.Command, root *rootOptions, names []string) (err error) {
	ctx := cmd.Context()
	a, err := openApp(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeApp(ctx, a, &err)
	r := a.registry

	r.Root()
	for _, name := range names {
		r.Get(name)
	}
	// list every ancestor of configured and requested names
	for _, name := range r.Names() {
		for parent, ok := logtree.Parent(name); ok; parent, ok = logtree.Parent(parent) {
			r.Get(parent)
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tLEVEL\tTRACING\tEXPLICIT")
	for _, name := range r.Names() {
		l := r.Get(name)
		display := name
		if l.IsRoot() {
			display = "(root)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", display, l.BackendName(), l.Level(), l.Tracing(), l.ExplicitTracing())
	}
	return w.Flush()
}
