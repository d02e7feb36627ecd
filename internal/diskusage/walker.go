package diskusage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Unlimited disables the depth limit.
const Unlimited = -1

// Kind classifies an entry by its own type, without following links.
type Kind int

const (
	// KindFile is any non-directory, non-symlink entry.
	KindFile Kind = iota
	// KindDir is a directory.
	KindDir
	// KindSymlink is a symbolic link, followed or not.
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Entry is one path produced by a Walker.
type Entry struct {
	// Path is the absolute path of the entry.
	Path string
	// Rel is the slash-separated path relative to the root, "." for the root.
	Rel string
	// Kind is the entry's own type.
	Kind Kind
	// Depth is the number of path segments below the root.
	Depth int
	// Descend is set for directories whose children are enumerated.
	Descend bool
	// Deref is set when probes should measure the link target.
	Deref bool
	// Recorded is set when the entry is within the depth limit or whitelisted.
	Recorded bool
}

// WalkOptions configures a Walker.
type WalkOptions struct {
	// MaxDepth limits which entries are recorded. Unlimited records all.
	MaxDepth int
	// OneFilesystem keeps the walk from entering directories on other devices.
	OneFilesystem bool
	// Whitelist exempts matching paths, and directory contents, from MaxDepth.
	Whitelist []Pattern
}

// Walker enumerates a directory tree top-down, depth first, with the
// children of each directory in lexical order.
type Walker struct {
	root  string
	opts  WalkOptions
	guard *LinkGuard
	log   *log.Logger
}

// walkItem is a pending entry on the walk stack.
type walkItem struct {
	entry Entry
	// pinned is inherited by everything below a whitelisted directory.
	pinned bool
}

// NewWalker returns a walker for root, which must be an absolute, clean path.
// A nil guard never follows symlinks.
func NewWalker(root string, opts WalkOptions, guard *LinkGuard, logger *log.Logger) *Walker {
	if guard == nil {
		guard = NewLinkGuard(false, opts.OneFilesystem, logger)
	}

	return &Walker{
		root:  root,
		opts:  opts,
		guard: guard,
		log:   orDiscard(logger),
	}
}

// Walk calls fn for every entry in preorder: a directory is always reported
// before its contents.
//
// The whole tree is enumerated regardless of MaxDepth so that directory
// totals stay complete and whitelisted paths below the limit are reached;
// MaxDepth only decides which entries are Recorded. Directories on another
// device are reported but not entered in one-filesystem mode. Symlinked
// directories are entered only when the LinkGuard allows it.
//
// An unreadable root, a symlink loop, an error from fn or the cancellation of
// ctx stop the walk and are returned.
func (w *Walker) Walk(ctx context.Context, fn func(Entry) error) error {
	rootStat, err := statPath(w.root, true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTraversal, &AccessError{Path: w.root, Err: err})
	}

	if !rootStat.dir {
		return fmt.Errorf("%w: %q is not a directory", ErrTarget, w.root)
	}

	stack := []walkItem{{
		entry: Entry{
			Path:     w.root,
			Rel:      ".",
			Kind:     KindDir,
			Descend:  true,
			Deref:    true,
			Recorded: true,
		},
	}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(item.entry); err != nil {
			return err
		}

		if !item.entry.Descend {
			continue
		}

		children, err := os.ReadDir(item.entry.Path)
		if err != nil {
			if item.entry.Depth == 0 {
				return fmt.Errorf("%w: reading %s: %w", ErrTraversal, item.entry.Path, err)
			}

			w.log.Debug("reading directory", "path", item.entry.Path, "err", err)

			continue
		}

		// Pushed in reverse so they are popped in lexical order.
		for i := len(children) - 1; i >= 0; i-- {
			child, err := w.classify(item, children[i], rootStat.dev)
			if err != nil {
				return err
			}

			stack = append(stack, child)
		}
	}

	return nil
}

// classify builds the stack item for the child d of parent.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *Walker) classify(parent walkItem, d fs.DirEntry, rootDev uint64) (walkItem, error) {
	child := walkItem{
		entry: Entry{
			Path:  filepath.Join(parent.entry.Path, d.Name()),
			Rel:   joinRel(parent.entry.Rel, d.Name()),
			Depth: parent.entry.Depth + 1,
		},
		pinned: parent.pinned,
	}
	entry := &child.entry

	switch {
	case d.Type()&fs.ModeSymlink != 0:
		entry.Kind = KindSymlink
		entry.Deref = w.guard.Following()

		decision, err := w.guard.Decide(entry.Path)
		if err != nil {
			return walkItem{}, err
		}

		entry.Descend = decision == Follow
	case d.IsDir():
		entry.Kind = KindDir
		entry.Descend = true

		if w.opts.OneFilesystem {
			st, err := statPath(entry.Path, false)
			if err != nil {
				w.log.Debug("checking device", "path", entry.Path, "err", err)
			} else if st.dev != rootDev {
				w.log.Debug("not crossing filesystem boundary", "path", entry.Path)

				entry.Descend = false
			}
		}
	default:
		entry.Kind = KindFile
	}

	whitelisted := false

	if !child.pinned {
		if matched := matchAny(w.opts.Whitelist, entry.Rel); matched != nil {
			whitelisted = true

			if !w.inDepth(entry.Depth) {
				w.log.Debug("whitelisted beyond depth", "path", entry.Rel, "pattern", matched.String())
			}
		}
	}

	if whitelisted && entry.Descend {
		child.pinned = true
	}

	entry.Recorded = child.pinned || whitelisted || w.inDepth(entry.Depth)

	return child, nil
}

// inDepth reports whether depth is within the configured limit.
func (w *Walker) inDepth(depth int) bool {
	return w.opts.MaxDepth < 0 || depth <= w.opts.MaxDepth
}

// joinRel appends name to a slash-separated relative path.
func joinRel(rel, name string) string {
	if rel == "." {
		return name
	}

	return rel + "/" + name
}
