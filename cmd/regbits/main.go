package main

import (
	"fmt"
	"os"

	"github.com/roach88/regbits/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Formatted output already happened inside the command; only
		// non-ExitError failures still need a message here.
		if _, ok := err.(*cli.ExitError); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
