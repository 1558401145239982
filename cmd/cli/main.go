package main

import (
	"os"

	"github.com/autoprov/autoprov/pkg/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
