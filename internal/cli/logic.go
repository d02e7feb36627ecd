package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/diskanalyzer/internal/diskusage"
)

// isTerminal reports whether writer is an interactive terminal.
func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

//nolint:cyclop // Linear pipeline: analyze, filter, sort, print
func logic(ctx context.Context, p plan, logger *log.Logger, stdout, stderr io.Writer) error {
	enableProgress := p.progress &&
		p.output != OutputJSON &&
		!p.debug &&
		isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(entries, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		fmt.Fprint(stderr, "\r\033[2KCounting items…\r")

		total, err := diskusage.Count(ctx, p.engine.Root, p.engine.FollowSymlinks)
		if err != nil {
			return err
		}

		progressHook = func(entries, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d/%d entries, %s",
				entries, total, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := diskusage.Analyze(ctx, p.engine, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	logger.Debug("analysis complete",
		"entries", result.Entries,
		"size", humanize.IBytes(uint64(result.Bytes)), //nolint:gosec // Bytes is always positive
		"errors", result.ErrorCount,
		"elapsed", result.Elapsed,
	)

	if len(result.Index) == 0 {
		return ErrNothingFound
	}

	filtered := diskusage.Filter(result.Index, result.Root, p.criteria)
	if len(filtered) == 0 {
		fmt.Fprintln(stderr, "No files matched the specified criteria.")

		return nil
	}

	rows := Sort(filtered, p.sortKey, p.reverse)

	switch {
	case p.output == OutputJSON:
		return PrintJSON(Summary{
			Root:       result.Root,
			Entries:    rows,
			ErrorCount: result.ErrorCount,
			Elapsed:    result.Elapsed,
		}, stdout)
	case p.tree:
		return PrintTree(rows, result.Root, stdout)
	default:
		return PrintFlat(rows, result.Root, p.format, stdout)
	}
}
