package config

import "runtime"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Corpus.SourcePath == "" {
		cfg.Corpus.SourcePath = "/usr/local/var/shokumu/data/postings.csv"
	}
	if cfg.Corpus.CachePath == "" {
		cfg.Corpus.CachePath = cfg.Corpus.SourcePath + ".embeddings"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/shokumu/data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.EncodeWorkers == 0 {
		cfg.Embedding.EncodeWorkers = runtime.NumCPU()
	}
	if cfg.Ranking.LexicalWeight == 0 {
		cfg.Ranking.LexicalWeight = 0.4
	}
	if cfg.Ranking.SemanticWeight == 0 {
		cfg.Ranking.SemanticWeight = 0.6
	}
	if cfg.Ranking.SimilarityFloor == 0 {
		cfg.Ranking.SimilarityFloor = 0.1
	}
	if cfg.Ranking.DedupThreshold == 0 {
		cfg.Ranking.DedupThreshold = 0.85
	}
	if cfg.Ranking.TopKCandidates == 0 {
		cfg.Ranking.TopKCandidates = 50
	}
	if cfg.Ranking.MissingSkillPreview == 0 {
		cfg.Ranking.MissingSkillPreview = 8
	}
	if cfg.Ranking.WarmupTimeoutSeconds == 0 {
		cfg.Ranking.WarmupTimeoutSeconds = 600
	}
	if cfg.Ranking.QueryTimeoutSeconds == 0 {
		cfg.Ranking.QueryTimeoutSeconds = 30
	}
}
