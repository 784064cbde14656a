// Package main is the Shokumu CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/shokumu/internal/config"
	"github.com/hyperjump/shokumu/internal/embedding"
	"github.com/hyperjump/shokumu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shokumu/config.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "shokumu",
	Short: "Hybrid job-posting ranking over a default corpus or live search results",
	Long: "Shokumu ranks job postings against a query or resume by fusing a " +
		"TF-IDF lexical signal with sentence-embedding similarity, annotating " +
		"each match with overlapping and missing skills.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads config from the --config path. When the path is the
// default, a config.yaml in the current directory takes precedence so runs
// from a project dir pick up the project's config.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				path = fallback
			}
		}
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return utils.NewLogger(cfg.Debug)
}

func newEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	return embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
}
