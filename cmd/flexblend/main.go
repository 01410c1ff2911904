// Command flexblend calculates how much E85 and base fuel to add to a tank.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/flexblend/internal/cli"
	"github.com/rshade/flexblend/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

// extractExitCode maps an error returned by run to a process exit code.
// Mix failures carry their own code; everything else exits 1.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var mixErr *cli.MixError
	if errors.As(err, &mixErr) {
		return mixErr.ExitCode()
	}
	return cli.ExitCodeFailure
}

func main() {
	if err := run(); err != nil {
		var mixErr *cli.MixError
		if !errors.As(err, &mixErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(extractExitCode(err))
	}
}
