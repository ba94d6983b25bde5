package main

import (
	"os"

	"github.com/conduit-lang/chartdata/internal/cli/commands"

	_ "time/tzdata"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
