package main

import (
	"fmt"
	"os"

	"github.com/ngthanhdat199/scrollchart/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scrollchart: %v\n", err)
		os.Exit(1)
	}
}
