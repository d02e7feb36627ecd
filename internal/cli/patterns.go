package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// IncludeFileName is the whitelist file picked up automatically.
	IncludeFileName = ".disk_analyzer_include"
	// IgnoreFileName is the blacklist file picked up automatically.
	IgnoreFileName = ".disk_analyzer_ignore"
	// commentMarker starts a comment line in pattern files.
	commentMarker = "#"
)

// LoadPatternFile reads one pattern per line, skipping blank lines and
// comments. The file order is preserved.
func LoadPatternFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}
	defer file.Close()

	var patterns []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		patterns = append(patterns, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}

	return patterns, nil
}

// FindPatternFiles returns the pattern files called name in target and in
// the home directory, in that order.
func FindPatternFiles(target, name string) []string {
	var files []string

	local := filepath.Join(target, name)
	if isFile(local) {
		files = append(files, local)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return files
	}

	if global := filepath.Join(home, name); global != local && isFile(global) {
		files = append(files, global)
	}

	return files
}

// cleanPatterns splits comma-separated patterns given on the command line,
// trims them and drops empty ones.
func cleanPatterns(raw []string) []string {
	patterns := make([]string, 0, len(raw))

	for _, item := range raw {
		for _, p := range strings.Split(item, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
	}

	return patterns
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
