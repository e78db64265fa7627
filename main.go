package main

import (
	"os"

	"github.com/ambuflow/crewmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
