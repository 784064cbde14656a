package embedding

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/hyperjump/shokumu/pkg/utils"
)

// MockEmbedder is a deterministic embedder for tests: a hashed bag-of-words
// projection, so texts sharing words get high cosine similarity and unrelated
// texts score near zero. EmbedCalls counts Embed invocations, which lets
// tests probe whether a cached matrix was recomputed.
type MockEmbedder struct {
	dimensions int
	EmbedCalls atomic.Int64
}

// NewMockEmbedder returns a mock embedder with the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed hashes each lowercased word into a dimension bucket and normalizes
// the resulting counts to unit length.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.EmbedCalls.Add(1)
	emb := make([]float32, e.dimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"()[]")
		if word == "" {
			continue
		}
		emb[hashToken(word)%e.dimensions]++
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}
