package main

import (
	"os"

	"github.com/apimeta-io/apimeta/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
