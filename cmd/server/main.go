package main

import (
	"os"

	"github.com/yukikurage/freelance-tracker-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
