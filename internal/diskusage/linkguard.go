package diskusage

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Decision is the outcome of a LinkGuard check.
type Decision int

const (
	// Skip means the entry is not descended into as a link.
	Skip Decision = iota
	// Follow means the symlinked directory is descended into.
	Follow
)

func (d Decision) String() string {
	if d == Follow {
		return "follow"
	}

	return "skip"
}

// inodeKey identifies a directory across the whole traversal.
type inodeKey struct {
	dev uint64
	ino uint64
}

// LinkGuard decides whether symlinked directories are entered and detects
// links that lead back into a directory already entered through a link.
// A LinkGuard belongs to a single traversal and is not safe for concurrent use.
type LinkGuard struct {
	follow        bool
	oneFilesystem bool
	visited       map[inodeKey]struct{}
	log           *log.Logger
}

// NewLinkGuard returns a guard with an empty visited set.
func NewLinkGuard(follow, oneFilesystem bool, logger *log.Logger) *LinkGuard {
	return &LinkGuard{
		follow:        follow,
		oneFilesystem: oneFilesystem,
		visited:       make(map[inodeKey]struct{}),
		log:           orDiscard(logger),
	}
}

// Following reports whether symlinks are dereferenced at all.
func (g *LinkGuard) Following() bool {
	return g.follow
}

// Decide reports whether the symlink at path should be descended into.
//
// Only links to directories are ever followed. In one-filesystem mode a link
// whose target lives on another device than the link's parent is skipped.
// A target that was already entered closes a cycle and yields an error
// wrapping ErrTraversal and ErrLoop. Stat failures are logged and skipped.
func (g *LinkGuard) Decide(path string) (Decision, error) {
	if !g.follow {
		return Skip, nil
	}

	link, err := statPath(path, false)
	if err != nil {
		g.log.Debug("checking symlink", "path", path, "err", err)

		return Skip, nil
	}

	if !link.symlink {
		return Skip, nil
	}

	target, err := statPath(path, true)
	if err != nil {
		g.log.Debug("resolving symlink", "path", path, "err", err)

		return Skip, nil
	}

	if !target.dir {
		return Skip, nil
	}

	if g.oneFilesystem {
		parent, err := statPath(filepath.Dir(path), true)
		if err != nil {
			g.log.Debug("checking symlink parent", "path", path, "err", err)

			return Skip, nil
		}

		if parent.dev != target.dev {
			g.log.Debug("symlink leaves filesystem", "path", path)

			return Skip, nil
		}
	}

	key := inodeKey{dev: target.dev, ino: target.ino}
	if _, seen := g.visited[key]; seen {
		return Skip, fmt.Errorf("%w: %w at %s", ErrTraversal, ErrLoop, path)
	}

	g.visited[key] = struct{}{}

	return Follow, nil
}

// orDiscard returns logger, or a logger that drops everything when nil.
func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}

	return log.New(io.Discard)
}
