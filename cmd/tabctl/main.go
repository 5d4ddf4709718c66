package main

import (
	"os"

	"github.com/mmynk/tabsplit/cmd/tabctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
