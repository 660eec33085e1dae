// Command calltape inspects, validates, catalogs, and generates tests from a
// directory of invocation recordings.
package main

import (
	"fmt"
	"os"

	"github.com/calltape/calltape/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
