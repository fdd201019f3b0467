package main

import (
	"os"

	"github.com/taoky/accesstat/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
