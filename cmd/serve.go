package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/render"
	"github.com/toposcope/toposcope/server"
	"github.com/toposcope/toposcope/viewer"
)

func serveCmd() *cobra.Command {
	var (
		addr   string
		theme  string
		static bool
	)

	cmd := &cobra.Command{
		Use:   "serve <graph.json|url>",
		Short: "Serve an interactive topology view over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := loadConfig()
			if err != nil {
				return err
			}
			if theme != "" {
				opts.Theme = theme
			}
			opts.Static = static
			// The server pushes the settled layout; no need to animate the
			// settling phase for fresh connections.
			opts.InitialAnimation = false

			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts.Data = g

			renderer, err := render.New("png")
			if err != nil {
				return err
			}
			v, err := viewer.New(opts, renderer, nil)
			if err != nil {
				return err
			}
			if err := v.LoadGraph(g); err != nil {
				return err
			}

			if static {
				if err := v.RunStatic(); err != nil {
					return err
				}
			} else {
				v.StartDynamic()
			}

			good.Printf("  serving %d nodes, %d links on %s\n", len(g.Nodes), len(g.Links), addr)
			return server.New(v).Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8420", "Listen address")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme name (dark, light, surreal)")
	cmd.Flags().BoolVar(&static, "static", false, "Converge once instead of animating")
	return cmd
}
