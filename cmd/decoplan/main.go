package main

import (
	"os"

	"github.com/katalvlaran/decoplan/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
