// Command deepclean recursively deletes bin and obj folders below the current directory.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/deepclean/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set by ldflags
var version = "unknown - unofficial & generated by unknown"

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)

			code = 1
		}
	}()

	code, err := cli.New(version).Execute(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)

		return 1
	}

	return code
}
