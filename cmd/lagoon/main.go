// Command lagoon is the CLI front end: run, lex, parse, compile, transpile,
// and version subcommands over the lagoon language packages.
package main

import (
	"os"

	"github.com/lagoon-lang/lagoon/cmd/lagoon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
