// Package main is the entry point for the dot CLI binary.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/irahardianto/thedot/cmd/dot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
