package main

import (
	"os"

	"github.com/exoplanet-imaging-challenge/eidc2/cmd/eidc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
