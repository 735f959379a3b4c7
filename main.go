package main

import (
	"os"

	"github.com/schoolops/subplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
