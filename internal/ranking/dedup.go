package ranking

import (
	"strings"

	"github.com/hyperjump/shokumu/internal/models"
	"github.com/hyperjump/shokumu/internal/textproc"
)

// dedupKey caches the normalized title and description word set for one result.
type dedupKey struct {
	title string
	words map[string]struct{}
}

func makeDedupKey(r *models.MatchResult) dedupKey {
	words := make(map[string]struct{})
	for _, tok := range textproc.Tokens(r.Description) {
		words[tok] = struct{}{}
	}
	return dedupKey{title: textproc.Normalize(r.Title), words: words}
}

// duplicate reports whether two results describe the same posting: equal
// normalized titles, or one title contained in the other with description
// word-set Jaccard similarity above threshold.
func duplicate(a, b dedupKey, threshold float64) bool {
	if a.title == b.title {
		return true
	}
	if a.title == "" || b.title == "" {
		return false
	}
	if !strings.Contains(a.title, b.title) && !strings.Contains(b.title, a.title) {
		return false
	}
	return jaccard(a.words, b.words) > threshold
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Deduplicate collapses near-duplicate postings, keeping the higher-scoring
// result of each duplicate pair. Non-duplicates keep their first-seen order;
// a higher-scoring duplicate takes over the slot of the result it displaces.
// When a takeover changes a slot's key, later kept entries are re-checked
// against it: a short title can bridge two longer titles that were not
// duplicates of each other. Idempotent: running it on its own output changes
// nothing.
func Deduplicate(results []models.MatchResult, threshold float64) []models.MatchResult {
	if len(results) < 2 {
		return results
	}
	kept := make([]models.MatchResult, 0, len(results))
	keys := make([]dedupKey, 0, len(results))

next:
	for i := range results {
		key := makeDedupKey(&results[i])
		for j := range kept {
			if duplicate(keys[j], key, threshold) {
				if results[i].HybridScore > kept[j].HybridScore {
					kept[j] = results[i]
					keys[j] = key
					kept, keys = collapseInto(kept, keys, j, threshold)
				}
				continue next
			}
		}
		kept = append(kept, results[i])
		keys = append(keys, key)
	}
	return kept
}

// collapseInto folds later kept entries duplicating slot j into that slot,
// keeping the highest score. Repeats from j+1 whenever the slot's key changes,
// so the winner is checked against everything after it.
func collapseInto(kept []models.MatchResult, keys []dedupKey, j int, threshold float64) ([]models.MatchResult, []dedupKey) {
	for m := j + 1; m < len(kept); {
		if !duplicate(keys[j], keys[m], threshold) {
			m++
			continue
		}
		displaced := kept[m].HybridScore > kept[j].HybridScore
		if displaced {
			kept[j], keys[j] = kept[m], keys[m]
		}
		kept = append(kept[:m], kept[m+1:]...)
		keys = append(keys[:m], keys[m+1:]...)
		if displaced {
			m = j + 1
		}
	}
	return kept, keys
}
