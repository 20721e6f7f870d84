// Package main is the entry point for the taskdeck CLI client.
package main

import (
	"fmt"
	"os"

	"github.com/taskdeck/backend/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	root := cli.NewRootCommand(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
