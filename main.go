package main

import (
	"os"

	"github.com/scienceol/molview/cmd"
	"github.com/scienceol/molview/pkg/utils"
)

func main() {
	if err := cmd.NewRoot(utils.SetupSignalContext()).Execute(); err != nil {
		os.Exit(1)
	}
}
