package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/ingest"
)

func scanCmd() *cobra.Command {
	var (
		output   string
		ports    string
		services bool
	)

	cmd := &cobra.Command{
		Use:   "scan <targets...>",
		Short: "Discover a topology with nmap and write it as a graph document",
		Long: `Scan the given targets (addresses or CIDR ranges) with nmap and
emit the discovered hosts as a topology graph, ready for render or serve.

  toposcope scan 192.168.1.0/24 -o lan.json
  toposcope scan 10.0.0.0/24 10.0.1.0/24 --ports 22,80,443 --services`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := &ingest.NmapSource{
				Targets:          args,
				Ports:            ports,
				ServiceDetection: services,
			}

			subtle.Printf("  scanning %d target(s)...\n", len(args))
			g, err := src.Load(cmd.Context())
			if err != nil {
				bad.Printf("  scan failed: %v\n", err)
				return err
			}

			data, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding graph: %w", err)
			}
			if output == "-" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing graph: %w", err)
			}
			good.Printf("  wrote %s (%d nodes, %d links)\n", output, len(g.Nodes), len(g.Links))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, or - for stdout")
	cmd.Flags().StringVar(&ports, "ports", "", "Port specification passed to nmap")
	cmd.Flags().BoolVar(&services, "services", false, "Enable service/version detection")
	return cmd
}
