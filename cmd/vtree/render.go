package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/snapshot"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// appFlags selects the initial playground state.
type appFlags struct {
	todos []string
}

func (a *appFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&a.todos, "todo", "t", []string{"Mount", "Update", "Destroy"}, "Initial todo items")
}

func (a *appFlags) tree() *vdom.Node {
	tree, _ := demo.Tree(a.todos...)
	return tree
}

func renderCmd(g *globals) *cobra.Command {
	var (
		app       appFlags
		ids       bool
		listeners bool
		stats     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the playground document as HTML",
		Long: `Mount the playground app into an in-memory document and print
the resulting HTML.

Examples:
  vtree render
  vtree render --ids --listeners
  vtree render --todo "write docs" --todo "ship"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())

			snap, err := snapshot.Render(app.tree(),
				dom.HTMLOptions{IDs: ids, Listeners: listeners},
				vdom.WithLogger(logger))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.HTML)
			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "elements=%d texts=%d mutations=%d\n",
					snap.Elements, snap.Texts, snap.Mutations)
			}
			return nil
		},
	}

	app.register(cmd)
	cmd.Flags().BoolVar(&ids, "ids", false, "Emit data-vid node ids")
	cmd.Flags().BoolVar(&listeners, "listeners", false, "Emit data-on-* markers for listened events")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print node and mutation counts to stderr")

	return cmd
}
