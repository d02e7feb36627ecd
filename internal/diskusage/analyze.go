package diskusage

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProgressInterval is the default interval for progress updates.
	DefaultProgressInterval = 500 * time.Millisecond
	// maxDefaultWorkers caps the default probe pool size.
	maxDefaultWorkers = 32
)

// Index maps absolute paths to their cumulative size in bytes.
type Index map[string]int64

// Options configures Analyze.
type Options struct {
	// Root is the directory to analyze. Defaults to the working directory.
	Root string
	// MaxDepth limits which entries are recorded. Unlimited records all.
	MaxDepth int
	// FollowSymlinks dereferences symlinks and enters symlinked directories.
	FollowSymlinks bool
	// OneFilesystem does not enter directories on other devices.
	OneFilesystem bool
	// Whitelist exempts matching paths from MaxDepth.
	Whitelist []Pattern
	// Parallel probes leaves on a worker pool.
	Parallel bool
	// Workers is the pool size for Parallel. Zero selects DefaultWorkers.
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// Result is the outcome of one Analyze call.
type Result struct {
	// Root is the absolute path that was analyzed.
	Root string `json:"root"`
	// Index holds the recorded sizes.
	Index Index `json:"index"`
	// Entries is the number of entries probed successfully.
	Entries int64 `json:"entries"`
	// Bytes is the total allocation measured, root included.
	Bytes int64 `json:"bytes"`
	// ErrorCount is the number of entries that could not be probed.
	ErrorCount int64 `json:"error_count"`
	// Parallel reports which strategy produced the index.
	Parallel bool `json:"parallel"`
	// Workers is the pool size used by the parallel strategy.
	Workers int `json:"workers,omitempty"`
	// Elapsed is the total time taken for analysis.
	Elapsed time.Duration `json:"elapsed"`
}

// DefaultWorkers returns the default probe pool size.
func DefaultWorkers() int {
	return min(maxDefaultWorkers, runtime.NumCPU()+4)
}

// startProgressReporter invokes hook(entries, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, t *tally, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(t.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Analyze walks opt.Root and returns the size of every recorded entry.
//
// Directory sizes are their own allocation plus the sizes of all entries
// below them. Entries that cannot be probed are logged and left out, adding
// nothing to their ancestors. The sequential and the parallel strategy yield
// the same Index.
//
// An invalid root returns an error wrapping ErrTarget. An unreadable root or
// a symlink loop returns an error wrapping ErrTraversal, and no Result.
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Analyze(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	logger := orDiscard(opt.Logger)

	if opt.Root == "" {
		opt.Root = "."
	}

	root, err := filepath.Abs(opt.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving absolute path: %w", ErrTarget, err)
	}

	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: accessing path %q: %w", ErrTarget, root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: path %q is not a directory", ErrTarget, root)
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	counts := &tally{}
	startProgressReporter(ctx, counts, progressHook, opt.ProgressInterval)

	guard := NewLinkGuard(opt.FollowSymlinks, opt.OneFilesystem, logger)
	walker := NewWalker(root, WalkOptions{
		MaxDepth:      opt.MaxDepth,
		OneFilesystem: opt.OneFilesystem,
		Whitelist:     opt.Whitelist,
	}, guard, logger)
	agg := &aggregator{log: logger, tally: counts}

	logger.Debug("starting analysis",
		"root", root,
		"max_depth", opt.MaxDepth,
		"follow_symlinks", opt.FollowSymlinks,
		"one_filesystem", opt.OneFilesystem,
		"whitelist", len(opt.Whitelist),
	)

	start := time.Now()

	var index Index

	if opt.Parallel {
		logger.Debug("using parallel processing", "workers", workers)

		index, err = agg.parallel(ctx, walker, workers)
	} else {
		index, err = agg.sequential(ctx, walker)
	}

	if err != nil {
		return nil, err
	}

	entries, bytes := counts.snapshot()

	result := &Result{
		Root:       root,
		Index:      index,
		Entries:    entries,
		Bytes:      bytes,
		ErrorCount: counts.errorCount(),
		Parallel:   opt.Parallel,
		Elapsed:    time.Since(start),
	}

	if opt.Parallel {
		result.Workers = workers
	}

	return result, nil
}

// aggregator folds probe results into an Index.
type aggregator struct {
	log   *log.Logger
	tally *tally
}

// probe measures e, logging and counting failures. It is safe for
// concurrent use.
func (a *aggregator) probe(e Entry) (int64, bool) {
	size, err := Probe(e.Path, e.Deref)
	if err != nil {
		a.log.Debug("skipping entry", "err", err)
		a.tally.addError()

		return 0, false
	}

	a.tally.add(size)

	return size, true
}

// dirFrame is a directory whose subtree is still being walked.
type dirFrame struct {
	entry    Entry
	children int64
}

// sequential aggregates in a single pass over the walk. Directories are
// finalized when the walk leaves them, after all their contents.
func (a *aggregator) sequential(ctx context.Context, w *Walker) (Index, error) {
	index := make(Index)

	var open []dirFrame

	closeTop := func() {
		top := open[len(open)-1]
		open = open[:len(open)-1]

		own, ok := a.probe(top.entry)
		if !ok {
			return
		}

		size := own + top.children
		if top.entry.Recorded {
			index[top.entry.Path] = size
		}

		if len(open) > 0 {
			open[len(open)-1].children += size
		}
	}

	err := w.Walk(ctx, func(e Entry) error {
		// Everything at this depth or deeper is a finished sibling subtree.
		for len(open) > 0 && open[len(open)-1].entry.Depth >= e.Depth {
			closeTop()
		}

		if e.Descend {
			open = append(open, dirFrame{entry: e})

			return nil
		}

		size, ok := a.probe(e)
		if !ok {
			return nil
		}

		if e.Recorded {
			index[e.Path] = size
		}

		if len(open) > 0 {
			open[len(open)-1].children += size
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for len(open) > 0 {
		closeTop()
	}

	return index, nil
}

// parallel enumerates the tree first, probes all leaves on a pool of workers
// and then aggregates directories deepest-first on the calling goroutine.
func (a *aggregator) parallel(ctx context.Context, w *Walker, workers int) (Index, error) {
	var dirs, leaves []Entry

	err := w.Walk(ctx, func(e Entry) error {
		if e.Descend {
			dirs = append(dirs, e)
		} else {
			leaves = append(leaves, e)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	a.log.Debug("probing entries", "leaves", len(leaves), "directories", len(dirs), "workers", workers)

	// One slot per leaf; each is written by exactly one worker.
	sizes := make([]int64, len(leaves))
	probed := make([]bool, len(leaves))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := range leaves {
		i := i

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			sizes[i], probed[i] = a.probe(leaves[i])

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := make(Index, len(dirs)+len(leaves))
	totals := make(map[string]int64, len(dirs))

	for i, e := range leaves {
		if !probed[i] {
			continue
		}

		if e.Recorded {
			index[e.Path] = sizes[i]
		}

		totals[filepath.Dir(e.Path)] += sizes[i]
	}

	slices.SortStableFunc(dirs, func(x, y Entry) int {
		return cmp.Compare(y.Depth, x.Depth)
	})

	for _, e := range dirs {
		own, ok := a.probe(e)
		if !ok {
			continue
		}

		size := own + totals[e.Path]
		if e.Recorded {
			index[e.Path] = size
		}

		if e.Depth > 0 {
			totals[filepath.Dir(e.Path)] += size
		}
	}

	return index, nil
}
