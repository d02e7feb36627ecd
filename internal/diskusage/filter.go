package diskusage

import (
	"path/filepath"
)

// Criteria selects which entries of an Index are kept by Filter.
type Criteria struct {
	// MinSize drops smaller entries unless they are whitelisted or AllFiles is set.
	MinSize int64
	// CutSize, when set, drops smaller entries unless they are whitelisted.
	CutSize *int64
	// Whitelist, when non-empty, keeps only matching entries.
	Whitelist []Pattern
	// Blacklist drops matching entries. Ignored when Whitelist is non-empty.
	Blacklist []Pattern
	// AllFiles disables the MinSize floor.
	AllFiles bool
}

// Filter returns the entries of index that satisfy c. Patterns are matched
// against paths relative to root. The input is not modified.
//
// Entries are first selected by membership: only whitelisted entries when a
// whitelist is given, otherwise all entries not blacklisted. Then entries
// below MinSize are dropped, and finally entries below CutSize. Whitelisted
// entries are exempt from both size floors.
func Filter(index Index, root string, c Criteria) Index {
	filtered := make(Index, len(index))

	for path, size := range index {
		rel := RelPath(root, path)
		whitelisted := matchAny(c.Whitelist, rel) != nil

		switch {
		case len(c.Whitelist) > 0:
			if !whitelisted {
				continue
			}
		case len(c.Blacklist) > 0:
			if matchAny(c.Blacklist, rel) != nil {
				continue
			}
		}

		if !c.AllFiles && !whitelisted && size < c.MinSize {
			continue
		}

		if c.CutSize != nil && !whitelisted && size < *c.CutSize {
			continue
		}

		filtered[path] = size
	}

	return filtered
}

// RelPath returns path relative to root in slash form, "." for root itself.
// Paths that cannot be made relative are returned unchanged.
func RelPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}
