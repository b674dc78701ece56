package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/partialgen/internal/discover"
	"github.com/jward/partialgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Regenerate partial declarations as C# files change",
	Long:  "Generates once, then watches the directory and regenerates the files changed during each debounce window.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	addFileFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}
	m, outDir, err := fileSettings(cmd)
	if err != nil {
		return err
	}
	g, err := newGenerator(findRepoRoot(targetDir))
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regenerate := func(paths []string) {
		paths = existingFiles(paths)
		if len(paths) == 0 {
			return
		}
		summary, err := generateFiles(ctx, g, paths, outDir, false)
		if err != nil {
			logger.Error("regenerate failed", zap.Error(err))
			return
		}
		for _, o := range summary.Outputs {
			if o.Written {
				logger.Info("wrote",
					zap.String("run_id", summary.RunID),
					zap.String("path", o.Path),
					zap.String("target", o.Target),
				)
			}
		}
	}

	w, err := watch.New(targetDir, m, cfg.Debounce, regenerate, watch.WithLogger(logger))
	if err != nil {
		return err
	}

	files, err := discover.Files(targetDir, m)
	if err != nil {
		w.Close()
		return err
	}
	regenerate(files)

	logger.Info("watching", zap.String("dir", targetDir), zap.Duration("debounce", cfg.Debounce))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
