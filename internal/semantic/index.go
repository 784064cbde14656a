// Package semantic provides the dense-embedding index over a corpus snapshot:
// batch encoding, cosine scoring, and a persistent cache artifact for the
// default corpus.
package semantic

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hyperjump/shokumu/internal/embedding"
	"github.com/hyperjump/shokumu/internal/models"
)

// Candidate is one scored corpus position.
type Candidate struct {
	Position int
	Score    float64
}

// Index is an embedding matrix aligned 1:1 with a corpus snapshot. Rows are
// unit-normalized, so inner product equals cosine similarity. Read-only after
// construction.
type Index struct {
	dimensions int
	matrix     [][]float32
}

// Build encodes every text into a row of the matrix using a bounded worker
// pool. Row order matches the input order (corpus positions). workers <= 1
// encodes sequentially.
func Build(ctx context.Context, embedder embedding.Embedder, texts []string, workers int) (*Index, error) {
	matrix := make([][]float32, len(texts))

	if workers <= 1 {
		embs, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: encode corpus: %v", models.ErrIndexBuild, err)
		}
		copy(matrix, embs)
		return &Index{dimensions: embedder.Dimensions(), matrix: matrix}, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("%w: create encode pool: %v", models.ErrIndexBuild, err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range texts {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed || ctx.Err() != nil {
				return
			}
			emb, err := embedder.Embed(ctx, texts[i])
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			matrix[i] = emb
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("%w: encode corpus: %v", models.ErrIndexBuild, firstErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: encode corpus: %v", models.ErrIndexBuild, err)
	}
	return &Index{dimensions: embedder.Dimensions(), matrix: matrix}, nil
}

// Score encodes the query and returns up to topN positions with cosine
// similarity strictly above floor, highest first.
func (ix *Index) Score(ctx context.Context, embedder embedding.Embedder, query string, topN int, floor float64) ([]Candidate, error) {
	qv, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", models.ErrIndexBuild, err)
	}
	if len(qv) != ix.dimensions {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d",
			models.ErrIndexBuild, len(qv), ix.dimensions)
	}

	candidates := make([]Candidate, 0, topN)
	for pos, row := range ix.matrix {
		var dot float64
		for j := range row {
			dot += float64(qv[j] * row[j])
		}
		if dot > floor {
			candidates = append(candidates, Candidate{Position: pos, Score: dot})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Position < candidates[j].Position
	})
	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates, nil
}

// Rows returns the number of matrix rows.
func (ix *Index) Rows() int {
	return len(ix.matrix)
}

// Dimensions returns the embedding dimension.
func (ix *Index) Dimensions() int {
	return ix.dimensions
}
