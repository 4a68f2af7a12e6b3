package main

import (
	"os"

	"github.com/abhisek/quickspeak/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
