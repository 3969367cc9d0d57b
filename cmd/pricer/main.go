// Command pricer prints present values for options, bonds and a mini swap.
package main

import (
	"os"

	"simple-pricer/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCmd(), os.Args[1:]))
}
