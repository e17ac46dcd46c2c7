// Package main is the entry point for the sitecheck application.
package main

import (
	"os"

	"github.com/sitefy/sitecheck/cmd/sitecheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
