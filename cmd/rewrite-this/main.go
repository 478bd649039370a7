package main

import (
	"os"

	"github.com/shavin-peiries/rewrite-this/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
