package main

import (
	"os"

	"github.com/GlyphSwap/swap-svc/internal/cli"
)

func main() {
	if !cli.Run(os.Args) {
		os.Exit(1)
	}
}
