package main

import (
	"fmt"
	"os"

	"github.com/Pranjal6955/terminal-devtool/tools/devtool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "devtool: %v\n", err)
		os.Exit(1)
	}
}
