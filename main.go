package main

import (
	"os"

	"github.com/codetesla51/stash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
