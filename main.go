package main

import (
	"os"

	"github.com/mkuzmin/toolpick/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
