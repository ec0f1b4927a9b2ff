// Package main is the entry point for the do CLI.
package main

import (
	"os"

	"github.com/iafisher/do/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
