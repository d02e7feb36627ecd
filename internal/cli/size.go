package cli

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// sizePattern splits a size string into its number and optional unit.
var sizePattern = regexp.MustCompile(`^([\d.]+)\s*([A-Za-z]+)?$`)

// sizeUnits maps accepted unit spellings to their binary humanize unit.
// All units are powers of 1024, whatever their spelling.
//
//nolint:gochecknoglobals // Lookup table
var sizeUnits = map[string]string{
	"":  "B",
	"B": "B",
	"K": "KiB", "KB": "KiB", "KIB": "KiB",
	"M": "MiB", "MB": "MiB", "MIB": "MiB",
	"G": "GiB", "GB": "GiB", "GIB": "GiB",
	"T": "TiB", "TB": "TiB", "TIB": "TiB",
	"P": "PiB", "PB": "PiB", "PIB": "PiB",
}

// sizeNames are the unit labels used by FormatSize.
//
//nolint:gochecknoglobals // Lookup table
var sizeNames = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// ParseSize parses sizes such as "512", "10K", "1.5G" or "2 MiB" into bytes.
// Every unit is binary: "1K" is 1024 bytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty size string", ErrArgument)
	}

	match := sizePattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: invalid size format: %s", ErrArgument, s)
	}

	unit, ok := sizeUnits[strings.ToUpper(match[2])]
	if !ok {
		return 0, fmt.Errorf("%w: invalid size unit: %s", ErrArgument, match[2])
	}

	size, err := humanize.ParseBytes(match[1] + " " + unit)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q: %w", ErrArgument, s, err)
	}

	if size > math.MaxInt64 {
		return 0, fmt.Errorf("%w: size %q out of range", ErrArgument, s)
	}

	return int64(size), nil
}

// FormatSize renders n bytes with two decimals in the largest binary unit
// that keeps the value at or above 1, e.g. "1.50 KB". Zero is "0 B".
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	unit := 0
	value := float64(n)

	for value >= 1024 && unit < len(sizeNames)-1 {
		value /= 1024
		unit++
	}

	value = math.Round(value*100) / 100

	// 1023.999 KB rounds up to 1024.00 KB; show it as 1.00 MB instead.
	if value >= 1024 && unit < len(sizeNames)-1 {
		value = math.Round(value/1024*100) / 100
		unit++
	}

	return fmt.Sprintf("%.2f %s", value, sizeNames[unit])
}
