package main

import (
	"os"

	"github.com/xavierca1/ghostreach/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
