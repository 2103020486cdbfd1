package main

import (
	"os"

	"github.com/pablasso/trowel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
