// Package main is the entry point for the redact CLI.
package main

import (
	"os"

	"github.com/runger/redact/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
