package main

import (
	"os"

	"github.com/okeanos-nlp/ocrscrub/cmd/ocrscrub/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
