package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/ingest"
	"github.com/toposcope/toposcope/models"
	"github.com/toposcope/toposcope/render"
	"github.com/toposcope/toposcope/store"
	"github.com/toposcope/toposcope/viewer"
)

func renderCmd() *cobra.Command {
	var (
		output string
		format string
		theme  string
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json|url>",
		Short: "Lay out a topology and export a single frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := loadConfig()
			if err != nil {
				return err
			}
			if theme != "" {
				opts.Theme = theme
			}
			opts.Static = true

			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts.Data = g

			renderer, err := render.New(format)
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

			var layouts *store.Store
			if cfg.LayoutDB != "" {
				layouts, err = store.Open(cfg.LayoutDB)
				if err != nil {
					return err
				}
				defer layouts.Close()
				applied, err := layouts.LoadLayout(cmd.Context(), g)
				if err != nil {
					return err
				}
				if applied > 0 {
					subtle.Printf("  restored %d cached positions\n", applied)
				}
			}

			if err := v.RunStatic(); err != nil {
				return err
			}

			if layouts != nil {
				if err := layouts.SaveLayout(cmd.Context(), g); err != nil {
					return err
				}
			}

			if err := os.WriteFile(output, v.LastFrame(), 0o644); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
			good.Printf("  wrote %s (%d nodes, %d links)\n", output, len(g.Nodes), len(g.Links))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "topology.png", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Frame format (png or svg)")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme name (dark, light, surreal)")
	return cmd
}

// loadGraph loads a topology from a URL or a local file.
func loadGraph(ctx context.Context, source string) (*models.Graph, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return ingest.Fetch(ctx, source)
	}
	return ingest.FromFile(source)
}
