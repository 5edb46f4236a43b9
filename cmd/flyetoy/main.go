// Command flyetoy runs the Flye toy-dataset smoke test.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/flyetoy/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
