package main

import (
	"os"

	"github.com/localrivet/chainrpc/cmd/chainrpc/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
