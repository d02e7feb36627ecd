package diskusage

import (
	"context"
	"io/fs"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// Count returns the number of entries below root, root included. It uses
// fastwalk's parallel traversal and is meant for sizing progress output, so
// unreadable entries are silently skipped.
func Count(ctx context.Context, root string, follow bool) (int64, error) {
	var total atomic.Int64

	conf := &fastwalk.Config{
		Follow: follow,
	}

	err := fastwalk.Walk(conf, root, func(_ string, _ fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Counting is best effort
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		total.Add(1)

		return nil
	})

	return total.Load(), err
}
