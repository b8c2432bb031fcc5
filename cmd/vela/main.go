package main

import (
	"os"

	"github.com/vela-lang/vela/cmd/vela/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
