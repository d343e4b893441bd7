// Package cmd implements the toposcope command line interface.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Shared output styles.
var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	subtle = color.New(color.Faint)
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "toposcope",
	Short:   "Force-directed network topology viewer",
	Long:    "Load a network topology from a file, URL, or live scan,\nlay it out with a force simulation, and view or export the result.",
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("toposcope {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		renderCmd(),
		serveCmd(),
		scanCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
