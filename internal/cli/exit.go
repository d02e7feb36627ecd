package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/diskanalyzer/internal/diskusage"
)

// Exit codes.
const (
	ExitSuccess     = 0
	ExitArgError    = 1
	ExitTargetError = 2
	ExitIOError     = 3
)

var (
	// ErrArgument marks malformed flags, sizes or patterns.
	ErrArgument = errors.New("invalid argument")
	// ErrNothingFound is returned when the analysis recorded no entries.
	ErrNothingFound = errors.New("no matching files found")
)

// Report writes err to writer and returns the process exit code for it.
func Report(err error, writer io.Writer) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNothingFound):
		fmt.Fprintln(writer, "No matching files found.")

		return ExitIOError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(writer, "\nOperation cancelled by user.")

		return ExitArgError
	case errors.Is(err, ErrArgument):
		fmt.Fprintf(writer, "Error: %v\n", err)

		return ExitArgError
	case errors.Is(err, diskusage.ErrTarget):
		fmt.Fprintf(writer, "Error: %v\n", err)

		return ExitTargetError
	case errors.Is(err, diskusage.ErrTraversal):
		fmt.Fprintf(writer, "Error during traversal: %v\n", err)

		return ExitIOError
	default:
		fmt.Fprintf(writer, "Unexpected error: %v\n", err)

		return ExitArgError
	}
}
