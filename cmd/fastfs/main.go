package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Cyclone1070/fastfs/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cli.ExitFailure)
		}
	}()

	os.Exit(cli.Execute())
}
