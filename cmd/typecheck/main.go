// Command typecheck drives the Flow Typer (C5) and Decision Engine (C3)
// over YAML fixtures, standing in for the parser and multi-file name
// resolver spec §1 puts out of the core's scope.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
