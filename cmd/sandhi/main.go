// Command sandhi compiles declarative rewrite rules into weighted
// transducers and validates tone sandhi segmentations against them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/sandhi/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands render their own errors before returning an ExitError;
		// anything else (flag parsing, format validation) surfaces here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
