// Package main is the entry point for the epoch CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/epoch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
