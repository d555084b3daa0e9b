// Package main is the entry point for the fintrack CLI.
package main

import (
	"os"

	"fintrack/cmd/fintrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
