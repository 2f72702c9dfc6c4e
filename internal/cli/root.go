// Package cli wires the testdiff commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specvital/testdiff/internal/config"

	_ "github.com/specvital/testdiff/pkg/parser/strategies/all"
)

// Version is reported by --version.
var Version = "dev"

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configFile string
	envFile    string
	logFormat  string
	verbose    bool

	workspace        string
	tests            string
	framework        string
	fileNames        bool
	noGitignore      bool
	workers          int
	listingThreshold int
	maxFileSize      int64
}

// NewRootCommand creates the testdiff root command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "testdiff",
		Short: "Report tests added and removed between two git revisions",
		Long: `testdiff extracts the suites and tests declared in JavaScript and TypeScript
test files (mocha, cypress and codeceptjs styles) and compares the working tree
against a baseline revision.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.verbose, opts.logFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file; never overrides the environment")
	flags.StringVar(&opts.logFormat, "log-format", logFormatText, "log format: text or json")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&opts.workspace, "workspace", "w", "", "working tree root (default $GITHUB_WORKSPACE or .)")
	flags.StringVarP(&opts.tests, "tests", "t", "", "glob selecting test files, e.g. 'test/**/*.spec.js'")
	flags.StringVarP(&opts.framework, "framework", "f", "", "mocha, cypress or codeceptjs (default mocha)")
	flags.BoolVar(&opts.fileNames, "file-names", false, "prefix test names with their file")
	flags.BoolVar(&opts.noGitignore, "no-gitignore", false, "do not filter test files by .gitignore")
	flags.IntVar(&opts.workers, "workers", 0, "parallel parsers (default GOMAXPROCS)")
	flags.IntVar(&opts.listingThreshold, "listing-threshold", 0, "list suites only above this many tests (default 900)")
	flags.Int64Var(&opts.maxFileSize, "max-file-size", 0, "maximum test file size in bytes (default 10MB)")

	cmd.AddCommand(newCompareCommand(opts))
	cmd.AddCommand(newListCommand(opts))

	return cmd
}

// load resolves the config and applies flags the user set explicitly.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		EnvFile:    o.envFile,
	})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workspace") {
		cfg.Workspace = o.workspace
	}
	if flags.Changed("tests") {
		cfg.Tests = o.tests
	}
	if flags.Changed("framework") {
		cfg.Framework = o.framework
	}
	if flags.Changed("file-names") {
		cfg.FileNames = o.fileNames
	}
	if flags.Changed("no-gitignore") {
		cfg.Gitignore = !o.noGitignore
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("listing-threshold") {
		cfg.ListingThreshold = o.listingThreshold
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = o.maxFileSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool, format string) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch format {
	case logFormatText, "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
