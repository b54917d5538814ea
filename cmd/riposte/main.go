package main

import (
	"os"

	"github.com/riposte-dev/riposte/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
