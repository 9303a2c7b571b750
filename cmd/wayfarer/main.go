// Package main is the entry point for the wayfarer command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/pkordes/wayfarer/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
