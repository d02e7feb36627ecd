package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/idelchi/diskanalyzer/internal/diskusage"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "diskanalyzer"
	// EnvPrefix prefixes environment variables overriding flags.
	EnvPrefix = "DISKANALYZER"

	// OutputText prints flat or tree lines.
	OutputText = "text"
	// OutputJSON prints a JSON document.
	OutputJSON = "json"
)

//nolint:gochecknoglobals // Config constants
var (
	allowedSorts   = []string{SortSize, SortName}
	allowedFormats = []string{PathAbsolute, PathRelative, PathBasename}
	allowedOutputs = []string{OutputText, OutputJSON}
)

// Settings holds the raw configuration after flags, environment and config
// file have been merged.
type Settings struct {
	Target        string
	Level         int
	OneFilesystem bool
	Dereference   bool
	MinSize       string
	All           bool
	Cut           string
	Whitelist     []string
	WhitelistFile string
	Blacklist     []string
	BlacklistFile string
	Sort          string
	Reverse       bool
	Tree          bool
	Format        string
	Output        string
	Debug         bool
	Progress      bool
	Parallel      bool
	Workers       int
}

// plan is a validated run configuration.
type plan struct {
	engine   diskusage.Options
	criteria diskusage.Criteria
	sortKey  string
	reverse  bool
	tree     bool
	format   string
	output   string
	progress bool
	debug    bool
}

// readConfig loads the config file at path, or the default config file if
// path is empty. A missing default config file is not an error.
func readConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: reading config file %s: %w", ErrArgument, path, err)
		}

		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil //nolint:nilerr // No config directory means no default config
	}

	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(dir, AppName))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("%w: reading config file: %w", ErrArgument, err)
	}

	return nil
}

// loadSettings reads the merged configuration from v.
func loadSettings(v *viper.Viper, args []string) Settings {
	settings := Settings{
		Target:        ".",
		Level:         v.GetInt("level"),
		OneFilesystem: v.GetBool("one-file-system"),
		Dereference:   v.GetBool("dereference"),
		MinSize:       v.GetString("min-size"),
		All:           v.GetBool("all"),
		Cut:           v.GetString("cut"),
		Whitelist:     v.GetStringSlice("whitelist"),
		WhitelistFile: v.GetString("whitelist-file"),
		Blacklist:     v.GetStringSlice("blacklist"),
		BlacklistFile: v.GetString("blacklist-file"),
		Sort:          v.GetString("sort"),
		Reverse:       v.GetBool("reverse"),
		Tree:          v.GetBool("tree"),
		Format:        v.GetString("format"),
		Output:        v.GetString("output"),
		Debug:         v.GetBool("debug"),
		Progress:      v.GetBool("progress"),
		Parallel:      v.GetBool("parallel"),
		Workers:       v.GetInt("workers"),
	}

	if len(args) > 0 {
		settings.Target = args[0]
	}

	return settings
}

// validate checks s and resolves it into a plan: sizes are parsed, the
// target is made absolute and patterns are collected and compiled.
//
//nolint:cyclop,funlen // Sequential validation of independent settings
func validate(s Settings, logger *log.Logger) (plan, error) {
	if s.Level < 0 {
		return plan{}, fmt.Errorf("%w: level must be a non-negative integer", ErrArgument)
	}

	if s.Workers < 0 {
		return plan{}, fmt.Errorf("%w: workers must be a non-negative integer", ErrArgument)
	}

	for _, check := range []struct {
		name    string
		value   string
		allowed []string
	}{
		{name: "sort", value: s.Sort, allowed: allowedSorts},
		{name: "format", value: s.Format, allowed: allowedFormats},
		{name: "output", value: s.Output, allowed: allowedOutputs},
	} {
		if !slices.Contains(check.allowed, check.value) {
			return plan{}, fmt.Errorf("%w: invalid %s %q: must be one of %v", ErrArgument, check.name, check.value, check.allowed)
		}
	}

	minSize, err := ParseSize(s.MinSize)
	if err != nil {
		return plan{}, fmt.Errorf("invalid min-size: %w", err)
	}

	criteria := diskusage.Criteria{MinSize: minSize, AllFiles: s.All}

	if s.Cut != "" {
		cut, err := ParseSize(s.Cut)
		if err != nil {
			return plan{}, fmt.Errorf("invalid cut size: %w", err)
		}

		criteria.CutSize = &cut
	}

	info, err := os.Stat(s.Target)
	if err != nil {
		return plan{}, fmt.Errorf("%w: target directory does not exist: %s", diskusage.ErrTarget, s.Target)
	}

	if !info.IsDir() {
		return plan{}, fmt.Errorf("%w: target is not a directory: %s", diskusage.ErrTarget, s.Target)
	}

	target, err := filepath.Abs(s.Target)
	if err != nil {
		return plan{}, fmt.Errorf("%w: resolving %s: %w", diskusage.ErrTarget, s.Target, err)
	}

	whitelist, err := collectPatterns(s.Whitelist, s.WhitelistFile, target, IncludeFileName, logger)
	if err != nil {
		return plan{}, err
	}

	var blacklist []string

	// Blacklists are only consulted when nothing is whitelisted.
	if len(whitelist) == 0 {
		if blacklist, err = collectPatterns(s.Blacklist, s.BlacklistFile, target, IgnoreFileName, logger); err != nil {
			return plan{}, err
		}
	}

	if criteria.Whitelist, err = diskusage.ParsePatterns(whitelist); err != nil {
		return plan{}, fmt.Errorf("%w: invalid pattern: %w", ErrArgument, err)
	}

	if criteria.Blacklist, err = diskusage.ParsePatterns(blacklist); err != nil {
		return plan{}, fmt.Errorf("%w: invalid pattern: %w", ErrArgument, err)
	}

	logger.Debug("resolved settings", "target", target, "whitelist", whitelist, "blacklist", blacklist)

	return plan{
		engine: diskusage.Options{
			Root:           target,
			MaxDepth:       s.Level,
			FollowSymlinks: s.Dereference,
			OneFilesystem:  s.OneFilesystem,
			Whitelist:      criteria.Whitelist,
			Parallel:       s.Parallel,
			Workers:        s.Workers,
			Logger:         logger,
		},
		criteria: criteria,
		sortKey:  s.Sort,
		reverse:  s.Reverse,
		tree:     s.Tree,
		format:   s.Format,
		output:   s.Output,
		progress: s.Progress,
		debug:    s.Debug,
	}, nil
}

// collectPatterns merges patterns given inline and in file. When both are
// empty, the auto-discovered pattern files called name are loaded instead;
// failures to read those are only logged.
func collectPatterns(inline []string, file, target, name string, logger *log.Logger) ([]string, error) {
	patterns := cleanPatterns(inline)

	if file != "" {
		loaded, err := LoadPatternFile(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArgument, err)
		}

		patterns = append(patterns, loaded...)
	}

	if len(patterns) > 0 {
		return patterns, nil
	}

	for _, found := range FindPatternFiles(target, name) {
		loaded, err := LoadPatternFile(found)
		if err != nil {
			logger.Debug("skipping pattern file", "path", found, "err", err)

			continue
		}

		logger.Debug("loaded pattern file", "path", found, "patterns", len(loaded))

		patterns = append(patterns, loaded...)
	}

	return patterns, nil
}
