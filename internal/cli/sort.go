package cli

import (
	"cmp"
	"slices"

	"github.com/idelchi/diskanalyzer/internal/diskusage"
)

const (
	// SortSize orders rows by size.
	SortSize = "size"
	// SortName orders rows by path.
	SortName = "name"
)

// Row is a single path and size in the output.
type Row struct {
	// Path is the absolute path.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Sort orders the entries of index by key, ascending unless reverse is set.
// Rows of equal size are always ordered by path.
func Sort(index diskusage.Index, key string, reverse bool) []Row {
	rows := make([]Row, 0, len(index))
	for path, size := range index {
		rows = append(rows, Row{Path: path, Size: size})
	}

	direction := 1
	if reverse {
		direction = -1
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		if key == SortSize {
			if c := cmp.Compare(a.Size, b.Size); c != 0 {
				return direction * c
			}

			return cmp.Compare(a.Path, b.Path)
		}

		return direction * cmp.Compare(a.Path, b.Path)
	})

	return rows
}
