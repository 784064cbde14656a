package lexical

import (
	"errors"
	"math"
	"testing"

	"github.com/hyperjump/shokumu/internal/models"
)

var fixtureDocs = []string{
	"Python Backend Engineer. Build python services with django and postgresql.",
	"python backend engineer. Build python services with django and postgresql.",
	"Senior React Developer. Frontend work with react, typescript and css.",
	"Data Scientist. Python, pandas and machine learning models in production.",
	"Platform Engineer. Kubernetes, terraform and backend automation.",
}

func fitFixture(t *testing.T) *Index {
	t.Helper()
	ix, err := Fit(fixtureDocs, Options{MaxFeatures: 5000, MinDocFreq: 2, MaxDocRatio: 0.8})
	if err != nil {
		t.Fatal(err)
	}
	return ix
}

func TestFit_FrequencyFilters(t *testing.T) {
	ix := fitFixture(t)
	if _, ok := ix.vocab["python"]; !ok {
		t.Error("python appears in 3 docs, should be in vocabulary")
	}
	// Terms in a single document are excluded by min doc freq.
	if _, ok := ix.vocab["terraform"]; ok {
		t.Error("terraform appears in 1 doc, should be excluded")
	}
	// Stop words never enter the space.
	if _, ok := ix.vocab["with"]; ok {
		t.Error("stop word in vocabulary")
	}
	if ix.DocCount() != len(fixtureDocs) {
		t.Errorf("DocCount = %d, want %d", ix.DocCount(), len(fixtureDocs))
	}
}

func TestFit_Bigrams(t *testing.T) {
	ix := fitFixture(t)
	if _, ok := ix.vocab["backend engineer"]; !ok {
		t.Error("bigram 'backend engineer' appears in 2 docs, should be in vocabulary")
	}
}

func TestFit_EmptyVocabulary(t *testing.T) {
	_, err := Fit([]string{"unique words here", "totally different text"}, DefaultOptions())
	if !errors.Is(err, models.ErrIndexBuild) {
		t.Errorf("expected ErrIndexBuild for empty vocabulary, got %v", err)
	}
}

func TestFit_MaxFeaturesCap(t *testing.T) {
	ix, err := Fit(fixtureDocs, Options{MaxFeatures: 3, MinDocFreq: 2, MaxDocRatio: 0.8})
	if err != nil {
		t.Fatal(err)
	}
	if ix.VocabSize() != 3 {
		t.Errorf("VocabSize = %d, want 3", ix.VocabSize())
	}
}

func TestScore_RanksMatchingDocsFirst(t *testing.T) {
	ix := fitFixture(t)
	cands := ix.Score("backend python developer", 10, 0.1)
	if len(cands) == 0 {
		t.Fatal("expected candidates")
	}
	if cands[0].Position != 0 && cands[0].Position != 1 {
		t.Errorf("top candidate should be a python backend posting, got position %d", cands[0].Position)
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Score > cands[i-1].Score {
			t.Fatal("candidates not sorted descending")
		}
	}
	for _, c := range cands {
		if c.Score <= 0.1 || c.Score > 1.0+1e-9 {
			t.Errorf("score %f outside (0.1, 1]", c.Score)
		}
	}
}

func TestScore_OutOfVocabularyQuery(t *testing.T) {
	ix := fitFixture(t)
	if cands := ix.Score("zymurgy quokka flibbertigibbet", 10, 0.1); len(cands) != 0 {
		t.Errorf("expected no candidates for out-of-vocabulary query, got %v", cands)
	}
}

func TestScore_TopNTruncation(t *testing.T) {
	ix := fitFixture(t)
	all := ix.Score("python backend engineer services", 10, 0.0)
	if len(all) < 2 {
		t.Skip("fixture produced too few candidates")
	}
	one := ix.Score("python backend engineer services", 1, 0.0)
	if len(one) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(one))
	}
	if one[0] != all[0] {
		t.Errorf("truncation changed the top candidate: %v vs %v", one[0], all[0])
	}
}

func TestScore_IdenticalDocMaxSimilarity(t *testing.T) {
	ix := fitFixture(t)
	// Query equal to a document scores that document near 1.0 on the fitted terms.
	cands := ix.Score(fixtureDocs[0], 10, 0.1)
	if len(cands) == 0 {
		t.Fatal("expected candidates")
	}
	if math.Abs(cands[0].Score-1.0) > 1e-9 {
		t.Errorf("self-similarity = %f, want 1.0", cands[0].Score)
	}
}
