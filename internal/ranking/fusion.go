// Package ranking fuses lexical and semantic signals into ranked, deduplicated
// match results. It is the public entry point of the engine.
package ranking

import (
	"math"

	"github.com/hyperjump/shokumu/internal/lexical"
	"github.com/hyperjump/shokumu/internal/semantic"
)

// Fused is one candidate position with both signals. Scores are in [0,1];
// a missing signal stays zero. A posting only needs to clear the similarity
// floor in one signal to surface (union, not intersection).
type Fused struct {
	Position      int
	LexicalScore  float64
	SemanticScore float64
	HybridScore   float64
}

// Fuse merges lexical and semantic candidate lists with the given weights.
// The order of the returned slice is unspecified; the orchestrator sorts
// after deduplication.
func Fuse(lex []lexical.Candidate, sem []semantic.Candidate, lexWeight, semWeight float64) []Fused {
	byPos := make(map[int]*Fused, len(lex)+len(sem))
	order := make([]int, 0, len(lex)+len(sem))

	for _, c := range lex {
		byPos[c.Position] = &Fused{Position: c.Position, LexicalScore: c.Score}
		order = append(order, c.Position)
	}
	for _, c := range sem {
		if f, ok := byPos[c.Position]; ok {
			f.SemanticScore = c.Score
			continue
		}
		byPos[c.Position] = &Fused{Position: c.Position, SemanticScore: c.Score}
		order = append(order, c.Position)
	}

	out := make([]Fused, 0, len(order))
	for _, pos := range order {
		f := byPos[pos]
		f.HybridScore = lexWeight*f.LexicalScore + semWeight*f.SemanticScore
		out = append(out, *f)
	}
	return out
}

// displayScore converts a [0,1] similarity to the 0-100 display scale,
// rounded to two decimals.
func displayScore(s float64) float64 {
	return math.Round(s*100*100) / 100
}
