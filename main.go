package main

import (
	"os"

	"github.com/toposcope/toposcope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
