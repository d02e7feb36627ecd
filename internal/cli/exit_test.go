package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/idelchi/diskanalyzer/internal/diskusage"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "success", err: nil, code: ExitSuccess, message: ""},
		{name: "argument", err: fmt.Errorf("%w: bad level", ErrArgument), code: ExitArgError, message: "Error: "},
		{name: "target", err: fmt.Errorf("%w: missing", diskusage.ErrTarget), code: ExitTargetError, message: "Error: "},
		{name: "loop", err: fmt.Errorf("%w: %w", diskusage.ErrTraversal, diskusage.ErrLoop), code: ExitIOError, message: "Error during traversal"},
		{name: "nothing found", err: ErrNothingFound, code: ExitIOError, message: "No matching files found."},
		{name: "interrupt", err: context.Canceled, code: ExitArgError, message: "cancelled by user"},
		{name: "unexpected", err: errors.New("boom"), code: ExitArgError, message: "Unexpected error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if got := Report(tt.err, &buf); got != tt.code {
				t.Errorf("Report() = %d, want %d", got, tt.code)
			}

			if !strings.Contains(buf.String(), tt.message) {
				t.Errorf("Report() wrote %q, want it to contain %q", buf.String(), tt.message)
			}
		})
	}
}
