package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/shokumu/internal/ranking"
	"github.com/hyperjump/shokumu/internal/watcher"
)

var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Short: "Build the default-corpus indices and embedding cache",
	Long: "Loads the default corpus, fits the lexical index, and encodes the " +
		"embedding matrix so later rank calls start from a warm cache. With " +
		"--watch it keeps running and re-encodes when the corpus source changes.",
	RunE: runWarmup,
}

var warmupWatch bool

func init() {
	warmupCmd.Flags().BoolVarP(&warmupWatch, "watch", "w", false, "Keep running and rebuild when the corpus source changes")
	rootCmd.AddCommand(warmupCmd)
}

func runWarmup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("initialize embedder: %w", err)
	}
	defer embedder.Close()

	engine := ranking.NewEngine(cfg, embedder, logger)
	if err := engine.Warmup(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Indices ready.")

	if !warmupWatch && !cfg.Watch.Enabled {
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	w := watcher.New(cfg.Corpus.SourcePath, corpusChanged(ctx, engine, logger), watcher.WithLogger(logger))
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start corpus watcher: %w", err)
	}
	defer w.Stop()

	logger.Info("watching corpus source", zap.String("source", cfg.Corpus.SourcePath))
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return nil
}

// corpusChanged returns the watcher callback that rebuilds the indices. A
// change to the source file is the re-arm signal for a failed engine: the
// previous failure may have been a partially written file, so Reset before
// warming up instead of surfacing the memoized error forever.
func corpusChanged(ctx context.Context, engine *ranking.Engine, logger *zap.Logger) func() {
	return func() {
		if engine.State() == ranking.StateFailed {
			engine.Reset()
		}
		engine.MarkStale()
		if err := engine.Warmup(ctx); err != nil {
			logger.Error("rebuild after corpus change failed", zap.Error(err))
		}
	}
}
