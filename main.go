package main

import (
	"os"

	"github.com/abhisek/hashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
