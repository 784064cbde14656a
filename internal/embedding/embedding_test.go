package embedding

import (
	"context"
	"math"
	"testing"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

func TestMockEmbedder_SimilarTextsCorrelate(t *testing.T) {
	ctx := context.Background()
	e := NewMockEmbedder(64)

	a, err := e.Embed(ctx, "python backend engineer")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.Embed(ctx, "backend python developer")
	c, _ := e.Embed(ctx, "watercolor landscape painting")

	if sim := cosine(a, b); sim < 0.5 {
		t.Errorf("overlapping texts should correlate, cosine = %f", sim)
	}
	if sim := cosine(a, c); sim > 0.4 {
		t.Errorf("unrelated texts should not correlate strongly, cosine = %f", sim)
	}
}

func TestMockEmbedder_UnitNorm(t *testing.T) {
	e := NewMockEmbedder(32)
	emb, err := e.Embed(context.Background(), "docker kubernetes terraform")
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, v := range emb {
		sum += float64(v * v)
	}
	if math.Abs(sum-1.0) > 1e-5 {
		t.Errorf("embedding not unit length, |v|^2 = %f", sum)
	}
}

func TestMockEmbedder_CountsCalls(t *testing.T) {
	e := NewMockEmbedder(16)
	_, _ = e.EmbedBatch(context.Background(), []string{"a b", "c d", "e f"})
	if got := e.EmbedCalls.Load(); got != 3 {
		t.Errorf("EmbedCalls = %d, want 3", got)
	}
}

func TestCache_LRUEviction(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be cached")
	}
	c.Set("c", []float32{3}) // evicts b: a was touched more recently
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestSimpleTokenizer_Padding(t *testing.T) {
	tok := &SimpleTokenizer{}
	ids, mask, types := tok.Tokenize("hello world", 8)
	if len(ids) != 8 || len(mask) != 8 || len(types) != 8 {
		t.Fatalf("wrong lengths: %d %d %d", len(ids), len(mask), len(types))
	}
	if ids[0] != 101 {
		t.Errorf("expected [CLS] at position 0, got %d", ids[0])
	}
	if ids[3] != 102 {
		t.Errorf("expected [SEP] after 2 tokens, got %d", ids[3])
	}
	if mask[0] != 1 || mask[1] != 1 || mask[2] != 1 || mask[3] != 1 || mask[4] != 0 {
		t.Errorf("unexpected attention mask %v", mask)
	}
}
