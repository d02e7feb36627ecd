package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help() string {
	return heredoc.Doc(`
		diskanalyzer reports du-style disk usage for a directory tree.

		Sizes are allocated blocks, so sparse files count what they occupy on disk
		and files with several hard links count once per path.

		Positional Arguments:
		  target                 Directory to analyze. Defaults to the current directory.

		Patterns:
		  Globs match the path relative to the target at any depth ('*.log', 'cache').
		  A leading '/' anchors a glob to the target ('/build/*').
		  Prefix a pattern with 'regex:' to match a regular expression anywhere in the path.
		  Whitelisted paths are shown regardless of --level, --min-size and --cut.
		  Blacklists are ignored when a whitelist is given.

		Pattern Files:
		  Without -w/--whitelist-file, '.disk_analyzer_include' is read from the target
		  and home directories. Without blacklists, '.disk_analyzer_ignore' is read the same way.

		Configuration:
		  Flags may also be set in $XDG_CONFIG_HOME/diskanalyzer/config.yaml (or --config)
		  and through DISKANALYZER_<FLAG> environment variables, e.g. DISKANALYZER_MIN_SIZE=10M.
	`)
}

// Execute runs the CLI with the process arguments. An interrupt cancels the
// analysis.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
//
//nolint:funlen // Flag table
func (c CLI) Command() *cobra.Command {
	var (
		configPath  string
		showVersion bool
	)

	v := viper.New()

	cmd := &cobra.Command{
		Use:           "diskanalyzer [flags] [target]",
		Short:         "Analyze disk usage with flexible filtering and sorting options",
		Long:          help(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: accepts at most one target, received %d", ErrArgument, len(args))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			if err := readConfig(v, configPath); err != nil {
				return err
			}

			settings := loadSettings(v, args)
			logger := newLogger(cmd.ErrOrStderr(), settings.Debug)

			defer recoverPanic(&err, logger, settings.Debug)

			p, err := validate(settings, logger)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), p, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrArgument, err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntP("level", "l", 1, "Maximum depth of listed entries")
	flags.BoolP("one-file-system", "x", false, "Stay on one filesystem")
	flags.BoolP("dereference", "L", false, "Follow symbolic links")
	flags.StringP("min-size", "m", "0K", "Minimum size threshold (e.g., 10M, 1.5G)")
	flags.BoolP("all", "a", false, "Include all entries regardless of size (still respects --cut)")
	flags.StringP("cut", "c", "", "Final cutoff size, applied after all other filters")
	flags.StringSliceP("whitelist", "w", nil, "Comma-separated whitelist patterns (overrides blacklists)")
	flags.String("whitelist-file", "", "File containing whitelist patterns (one per line)")
	flags.StringSliceP("blacklist", "b", nil, "Comma-separated blacklist patterns")
	flags.String("blacklist-file", "", "File containing blacklist patterns (one per line)")
	flags.StringP("sort", "s", SortSize, "Sort key: size or name")
	flags.BoolP("reverse", "r", false, "Reverse sort order")
	flags.BoolP("tree", "t", false, "Display results as a tree")
	flags.StringP("format", "f", PathRelative, "Path format: absolute, relative or basename")
	flags.StringP("output", "o", OutputText, "Output format: text or json")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.BoolP("progress", "p", false, "Show a progress indicator")
	flags.Bool("parallel", false, "Measure files on a pool of workers")
	flags.Int("workers", 0, "Number of workers for --parallel (0 = min(32, CPUs+4))")
	flags.StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/diskanalyzer/config.yaml)")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version and exit")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

// newLogger returns the logger threaded through the analysis.
func newLogger(writer io.Writer, debugMode bool) *log.Logger {
	level := log.WarnLevel
	if debugMode {
		level = log.DebugLevel
	}

	return log.NewWithOptions(writer, log.Options{
		Prefix:          AppName,
		Level:           level,
		ReportTimestamp: debugMode,
	})
}

// recoverPanic turns a panic into an error, logging the stack trace in debug mode.
func recoverPanic(err *error, logger *log.Logger, debugMode bool) {
	r := recover()
	if r == nil {
		return
	}

	if debugMode {
		logger.Error("panic", "value", r, "stack", string(debug.Stack()))
	}

	*err = fmt.Errorf("%v", r)
}
