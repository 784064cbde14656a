// Package config provides configuration loading and structs for the Shokumu ranking engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the engine and its CLI.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Watch     WatchConfig     `yaml:"watch"`
}

// CorpusConfig holds the default corpus source and the embedding cache artifact path.
type CorpusConfig struct {
	// SourcePath is the tabular job-posting source (.csv, .xlsx, or a SQLite database).
	SourcePath string `yaml:"source_path"`
	// CachePath is where the default corpus embedding matrix is persisted.
	// Empty means SourcePath + ".embeddings".
	CachePath string `yaml:"cache_path"`
}

// EmbeddingConfig holds ONNX embedder settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
	// EncodeWorkers bounds the worker pool for full-corpus batch encoding.
	EncodeWorkers int `yaml:"encode_workers"`
}

// RankingConfig holds scoring and deduplication settings.
//
// The weight split, similarity floor, and dedup threshold are carried over
// from the source system without a documented derivation; treat them as
// defaults to calibrate against labeled data, not as tuned constants.
type RankingConfig struct {
	LexicalWeight       float64 `yaml:"lexical_weight"`
	SemanticWeight      float64 `yaml:"semantic_weight"`
	SimilarityFloor     float64 `yaml:"similarity_floor"`
	DedupThreshold      float64 `yaml:"dedup_threshold"`
	TopKCandidates      int     `yaml:"top_k_candidates"`
	MissingSkillPreview int     `yaml:"missing_skill_preview"`
	// WarmupTimeoutSeconds bounds default-corpus initialization (a one-time,
	// potentially multi-minute encode). QueryTimeoutSeconds bounds a single
	// ranking call once the indices are ready.
	WarmupTimeoutSeconds int `yaml:"warmup_timeout_seconds"`
	QueryTimeoutSeconds  int `yaml:"query_timeout_seconds"`
}

// WatchConfig controls the corpus source file watcher.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.SourcePath = expandPath(cfg.Corpus.SourcePath, configDir)
	cfg.Corpus.CachePath = expandPath(cfg.Corpus.CachePath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
