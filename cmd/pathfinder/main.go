// Package main provides the entry point for the pathfinder CLI.
package main

import (
	"os"

	"github.com/kraklabs/bipass-pathfinder/cmd/pathfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
