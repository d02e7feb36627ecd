package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const (
	// SizeColumnWidth is the width the size column is padded to.
	SizeColumnWidth = 12
	// TreeIndent is the indentation added per tree level.
	TreeIndent = "  "
)

// Path formats accepted by FormatPath.
const (
	PathAbsolute = "absolute"
	PathRelative = "relative"
	PathBasename = "basename"
)

// Summary is the JSON document printed by PrintJSON.
type Summary struct {
	// Root is the analyzed directory.
	Root string `json:"root"`
	// Entries are the filtered and sorted rows.
	Entries []Row `json:"entries"`
	// ErrorCount is the number of entries that could not be measured.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the time the analysis took.
	Elapsed time.Duration `json:"elapsed"`
}

// FormatPath renders path for display according to format.
func FormatPath(path, root, format string) string {
	switch format {
	case PathRelative:
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return path
		}

		return rel
	case PathBasename:
		return filepath.Base(path)
	default:
		return path
	}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// sizeField pads the formatted size to the size column.
func sizeField(size int64) string {
	return fmt.Sprintf("%-*s", SizeColumnWidth, FormatSize(size))
}

// PrintFlat writes one "<size>  <path>" line per row.
func PrintFlat(rows []Row, root, format string, writer io.Writer) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(writer, "%s  %s\n", sizeField(row.Size), FormatPath(row.Path, root, format)); err != nil {
			return err
		}
	}

	return nil
}

// PrintTree writes one line per row, indented by the row's depth below root
// and labelled with the base name.
func PrintTree(rows []Row, root string, writer io.Writer) error {
	for _, row := range rows {
		indent := strings.Repeat(TreeIndent, calculateDepth(row.Path, root))

		if _, err := fmt.Fprintf(writer, "%s%s  %s\n", indent, sizeField(row.Size), filepath.Base(row.Path)); err != nil {
			return err
		}
	}

	return nil
}

// PrintJSON outputs the summary in JSON format.
func PrintJSON(summary Summary, writer io.Writer) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}
