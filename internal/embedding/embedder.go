// Package embedding provides sentence embedding via ONNX, with an LRU cache
// and a deterministic mock for tests. One Embedder instance is shared across
// default-corpus and live-mode ranking; the model is loaded once per process.
package embedding

import "context"

// Embedder produces unit-normalized vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
