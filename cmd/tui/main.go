// Package main is the entry point for the terminal gallery.
package main

import (
	"os"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd(stdioIsTerminal).Execute(); err != nil {
		os.Exit(1)
	}
}
