package main

import (
	"os"

	"github.com/mbrivio/turni/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
