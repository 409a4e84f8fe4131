// Command mdu reports the disk blocks used by files and directory trees.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/mdu/internal/cli"
	"github.com/idelchi/mdu/internal/du"
)

// Set by the build.
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		if !errors.Is(err, du.ErrIncomplete) {
			fmt.Fprintf(os.Stderr, "du: %v\n", err)
		}

		os.Exit(1)
	}
}
