package diskusage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// RegexPrefix marks a pattern as a regular expression instead of a glob.
const RegexPrefix = "regex:"

// Pattern matches root-relative, slash-separated paths.
//
// A regex pattern matches when the expression is found anywhere in the path.
// A glob starting with a separator is anchored and must match the whole
// relative path. Any other glob matches the whole path or any trailing run of
// path segments, so "*.log" matches "a.log" as well as "x/y/a.log".
// In globs '*' also matches separators.
type Pattern struct {
	raw    string
	re     *regexp.Regexp
	whole  glob.Glob
	suffix glob.Glob
}

// ParsePattern compiles s. Patterns prefixed with "regex:" are regular
// expressions, everything else is a glob.
func ParsePattern(s string) (Pattern, error) {
	if expr, ok := strings.CutPrefix(s, RegexPrefix); ok {
		re, err := regexp.Compile(expr)
		if err != nil {
			return Pattern{}, fmt.Errorf("compiling regex pattern %q: %w", expr, err)
		}

		return Pattern{raw: s, re: re}, nil
	}

	expr := filepath.ToSlash(s)
	anchored := strings.HasPrefix(expr, "/")
	expr = strings.TrimLeft(expr, "/")

	whole, err := glob.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compiling glob pattern %q: %w", s, err)
	}

	pattern := Pattern{raw: s, whole: whole}

	if !anchored {
		if pattern.suffix, err = glob.Compile("*/" + expr); err != nil {
			return Pattern{}, fmt.Errorf("compiling glob pattern %q: %w", s, err)
		}
	}

	return pattern, nil
}

// ParsePatterns compiles every entry of raw, stopping at the first error.
func ParsePatterns(raw []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(raw))

	for _, s := range raw {
		p, err := ParsePattern(s)
		if err != nil {
			return nil, err
		}

		patterns = append(patterns, p)
	}

	return patterns, nil
}

// String returns the pattern as it was given.
func (p Pattern) String() string {
	return p.raw
}

// IsRegex reports whether p is a regular expression.
func (p Pattern) IsRegex() bool {
	return p.re != nil
}

// Match reports whether the root-relative path rel matches p.
func (p Pattern) Match(rel string) bool {
	rel = filepath.ToSlash(rel)

	switch {
	case p.re != nil:
		return p.re.MatchString(rel)
	case p.whole == nil:
		return false
	case p.whole.Match(rel):
		return true
	default:
		return p.suffix != nil && p.suffix.Match(rel)
	}
}

// matchAny returns the first pattern matching rel, or nil.
func matchAny(patterns []Pattern, rel string) *Pattern {
	for i := range patterns {
		if patterns[i].Match(rel) {
			return &patterns[i]
		}
	}

	return nil
}
