package main

import (
	"os"

	"github.com/masqdata/masq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
