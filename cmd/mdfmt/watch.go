package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/mdfmt"
	"github.com/aretw0/mdfmt/internal/platform"
	"github.com/aretw0/mdfmt/pkg/adapters/fs"
	"github.com/aretw0/mdfmt/pkg/adapters/lifecycle"
	"github.com/aretw0/mdfmt/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Format notes whenever they are created or modified",
	Long: `Watch a directory recursively and format every matching note on
create and modify. Without a directory, the vault root (.obsidian or .git)
above the working directory is used, falling back to the working directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := watchDir(args)
		if err != nil {
			fatal("Error resolving directory", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := mdfmt.NewRunner(
			mdfmt.WithLogger(slog.Default()),
			mdfmt.WithWatcherErrorHandler(func(err error) {
				slog.Error("watcher error", "error", err)
			}),
		)

		events, err := runner.Watch(ctx, dir, watchPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		source := lifecycle.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}

		slog.Info("watching", "dir", dir, "pattern", watchPattern)
		for e := range source.Events() {
			event, ok := e.(core.Event)
			if !ok {
				continue
			}
			changed, err := runner.FormatFile(event.Path)
			if err != nil {
				slog.Warn("format failed", "path", event.Path, "error", err)
				continue
			}
			if changed {
				slog.Info("formatted", "path", event.Path)
			} else {
				slog.Debug("unchanged", "path", event.Path, "event", event.Type)
			}
		}
		slog.Info("watch stopped")
	},
}

func watchDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := platform.FindRoot(wd)
	if errors.Is(err, platform.ErrRootNotFound) {
		return wd, nil
	}
	return root, err
}

func init() {
	watchCmd.Flags().StringVarP(&watchPattern, "glob", "g", fs.DefaultWatchPattern, "Pattern of watched files, relative to the directory")
	rootCmd.AddCommand(watchCmd)
}
