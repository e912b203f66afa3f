package main

import (
	"os"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
