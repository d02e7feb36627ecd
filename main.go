// Command diskanalyzer reports du-style disk usage for a directory tree.
package main

import (
	"os"

	"github.com/idelchi/diskanalyzer/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	os.Exit(cli.Report(cli.New(version).Execute(), os.Stderr))
}
