// Package lexical provides a TF-IDF vector space over a corpus snapshot and
// cosine-similarity query scoring against it.
package lexical

import (
	"fmt"
	"math"
	"sort"

	"github.com/hyperjump/shokumu/internal/models"
	"github.com/hyperjump/shokumu/internal/textproc"
)

// Options control vocabulary construction.
type Options struct {
	// MaxFeatures caps the vocabulary, keeping the highest-frequency terms.
	MaxFeatures int
	// MinDocFreq excludes terms appearing in fewer documents.
	MinDocFreq int
	// MaxDocRatio excludes terms appearing in more than this fraction of documents.
	MaxDocRatio float64
}

// DefaultOptions are the fitted-space parameters used for ranking.
func DefaultOptions() Options {
	return Options{MaxFeatures: 5000, MinDocFreq: 2, MaxDocRatio: 0.8}
}

// Candidate is one scored corpus position.
type Candidate struct {
	Position int
	Score    float64
}

// sparseVec maps vocabulary column to weight.
type sparseVec map[int]float64

// Index is a fitted TF-IDF vector space: vocabulary, inverse document
// frequencies, and unit-normalized document vectors aligned with corpus
// positions. Built once per corpus snapshot, never partially updated.
type Index struct {
	vocab map[string]int
	idf   []float64
	docs  []sparseVec
}

// Fit builds the vector space over the given documents (one per corpus
// position). Terms are lowercase unigrams and bigrams of the normalized text,
// with single-character tokens and English stop words removed. Returns
// models.ErrIndexBuild when no term survives the frequency filters.
func Fit(texts []string, opts Options) (*Index, error) {
	if opts.MaxFeatures <= 0 || opts.MinDocFreq <= 0 || opts.MaxDocRatio <= 0 {
		return nil, fmt.Errorf("%w: invalid lexical options %+v", models.ErrIndexBuild, opts)
	}

	docTerms := make([]map[string]int, len(texts))
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for i, text := range texts {
		counts := termCounts(text)
		docTerms[i] = counts
		for term, n := range counts {
			docFreq[term]++
			termFreq[term] += n
		}
	}

	maxDocs := int(opts.MaxDocRatio * float64(len(texts)))
	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < opts.MinDocFreq || df > maxDocs {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary after frequency filtering (%d documents)",
			models.ErrIndexBuild, len(texts))
	}

	// Cap by corpus term frequency; lexicographic tie-break keeps the fit deterministic.
	sort.Slice(kept, func(i, j int) bool {
		if termFreq[kept[i]] != termFreq[kept[j]] {
			return termFreq[kept[i]] > termFreq[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if len(kept) > opts.MaxFeatures {
		kept = kept[:opts.MaxFeatures]
	}
	sort.Strings(kept)

	ix := &Index{
		vocab: make(map[string]int, len(kept)),
		idf:   make([]float64, len(kept)),
		docs:  make([]sparseVec, len(texts)),
	}
	n := float64(len(texts))
	for col, term := range kept {
		ix.vocab[term] = col
		// Smoothed IDF, so every fitted term keeps a positive weight.
		ix.idf[col] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	for i, counts := range docTerms {
		ix.docs[i] = ix.vectorize(counts)
	}
	return ix, nil
}

// Score vectorizes the query with the fitted vocabulary (out-of-vocabulary
// terms ignored) and returns up to topN positions with cosine similarity
// strictly above floor, highest first.
func (ix *Index) Score(query string, topN int, floor float64) []Candidate {
	qv := ix.vectorize(termCounts(query))
	if len(qv) == 0 {
		return nil
	}

	candidates := make([]Candidate, 0, topN)
	for pos, dv := range ix.docs {
		score := dot(qv, dv)
		if score > floor {
			candidates = append(candidates, Candidate{Position: pos, Score: score})
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
	return candidates
}

// VocabSize returns the number of fitted features.
func (ix *Index) VocabSize() int {
	return len(ix.vocab)
}

// DocCount returns the number of document vectors.
func (ix *Index) DocCount() int {
	return len(ix.docs)
}

// vectorize maps term counts to a unit-normalized tf-idf vector over the
// fitted vocabulary.
func (ix *Index) vectorize(counts map[string]int) sparseVec {
	vec := make(sparseVec)
	for term, tf := range counts {
		col, ok := ix.vocab[term]
		if !ok {
			continue
		}
		vec[col] = float64(tf) * ix.idf[col]
	}
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return sparseVec{}
	}
	norm = math.Sqrt(norm)
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}

// termCounts extracts unigram and bigram counts from normalized text.
// Stop words and single-character tokens are dropped before n-grams form,
// so bigrams bridge removed words ("expert in go" -> "expert go").
func termCounts(text string) map[string]int {
	raw := textproc.Tokens(text)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 || stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}

// dot computes the inner product of two unit vectors, iterating the smaller.
func dot(a, b sparseVec) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, w := range a {
		if bw, ok := b[col]; ok {
			sum += w * bw
		}
	}
	return sum
}
