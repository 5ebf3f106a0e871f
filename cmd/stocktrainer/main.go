package main

import (
	"os"

	"stocktrainer/cmd/stocktrainer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
