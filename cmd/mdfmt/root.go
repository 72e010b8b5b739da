package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mdfmt"
	"github.com/aretw0/mdfmt/pkg/adapters/fs"
)

var (
	verbose bool

	files     []string
	glob      string
	write     bool
	check     bool
	asJSON    bool
	asTree    bool
	asNote    bool
	indexFile string
)

// errCheckFailed signals that --check found documents it cannot format.
var errCheckFailed = errors.New("some files could not be formatted")

// rootCmd formats the given files when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mdfmt [files...]",
	Short: "A deterministic formatter for Markdown notes",
	Long: `mdfmt rewrites Markdown notes (GFM, YAML frontmatter, math and
Obsidian callouts) into one canonical text. Formatting canonical text
returns it unchanged.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := selectMode()
		if err != nil {
			return err
		}

		if len(args) == 0 && len(files) == 0 && glob == "" {
			return cmd.Help()
		}
		paths, err := fs.Resolve(append(args, files...), glob)
		if err != nil {
			return err
		}

		runner := mdfmt.NewRunner(mdfmt.WithLogger(slog.Default()))
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if indexFile != "" {
			if err := runner.WriteIndex(ctx, paths, indexFile); err != nil {
				return err
			}
			slog.Debug("index written", "file", indexFile, "documents", len(paths))
			return nil
		}

		report, err := runner.Run(ctx, paths, mode, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		slog.Debug("run finished",
			"mode", mode.String(),
			"processed", report.Processed,
			"changed", report.Changed,
			"failed", len(report.Failed),
		)
		if len(report.Failed) > 0 {
			return fmt.Errorf("%w: %d of %d", errCheckFailed, len(report.Failed), report.Processed)
		}
		return nil
	},
}

// selectMode maps the output flags to a batch mode. At most one may be set.
func selectMode() (fs.Mode, error) {
	mode := fs.ModeStdout
	set := 0
	for _, f := range []struct {
		on   bool
		mode fs.Mode
	}{
		{write, fs.ModeWrite},
		{check, fs.ModeCheck},
		{asJSON, fs.ModeJSON},
		{asTree, fs.ModeTree},
		{asNote, fs.ModeNote},
	} {
		if f.on {
			mode = f.mode
			set++
		}
	}
	if set > 1 {
		return mode, errors.New("--write, --check, --json, --md and --note are mutually exclusive")
	}
	return mode, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&files, "file", "f", nil, "File to format (repeatable)")
	flags.StringVarP(&glob, "glob", "g", "", "Glob of files to format, replaces the file list (supports **)")
	flags.BoolVarP(&write, "write", "w", false, "Rewrite files in place when their text changes")
	flags.BoolVar(&check, "check", false, "List files that cannot be formatted and exit non-zero")
	flags.BoolVar(&asJSON, "json", false, "Print the JSON note model")
	flags.BoolVar(&asTree, "md", false, "Print the Markdown syntax tree")
	flags.BoolVar(&asNote, "note", false, "Print the parsed note")
	flags.StringVar(&indexFile, "index", "", "Write a JSON metadata index of the files to `FILE`")
}
