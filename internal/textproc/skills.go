package textproc

import (
	"regexp"
	"sort"
)

// SkillVocabulary is the fixed list of recognized skill keywords. Matching is
// a closed-vocabulary word-boundary test, not NLP extraction: terms not listed
// here are never detected. Known limitation, kept deliberately so matched and
// missing skill annotations stay canonical and comparable.
var SkillVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang", "c++", "c#",
	"rust", "ruby", "php", "swift", "kotlin", "scala", "sql", "html", "css",
	"react", "angular", "vue", "node.js", "next.js", "django", "flask",
	"fastapi", "spring", "express", "rails", "laravel",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"machine learning", "deep learning", "nlp", "computer vision",
	"data analysis", "data science", "data engineering", "etl",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
	"git", "linux", "ci/cd", "agile", "scrum", "rest", "graphql", "grpc",
	"microservices", "mongodb", "postgresql", "mysql", "redis",
	"elasticsearch", "kafka", "spark", "hadoop", "airflow",
	"tableau", "power bi", "excel",
}

// skillPatterns precompiles a word-boundary pattern per vocabulary term.
// The boundary class excludes + # . / so terms like "c++", "c#", "node.js",
// and "ci/cd" match whole and "c" does not fire inside "c++".
var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(SkillVocabulary))
	for _, term := range SkillVocabulary {
		patterns[term] = regexp.MustCompile(
			`(?:^|[^a-z0-9+#./])` + regexp.QuoteMeta(term) + `(?:[^a-z0-9+#./]|$)`)
	}
	return patterns
}

// ExtractSkills returns the set of vocabulary terms present in text.
// Deterministic and order-independent; always a subset of SkillVocabulary.
func ExtractSkills(text string) map[string]struct{} {
	lower := normalizeForSkills(text)
	skills := make(map[string]struct{})
	for term, pattern := range skillPatterns {
		if pattern.MatchString(lower) {
			skills[term] = struct{}{}
		}
	}
	return skills
}

// normalizeForSkills lowercases and pads the text so boundary patterns can
// anchor at the edges. Punctuation is kept: several terms contain it.
func normalizeForSkills(text string) string {
	b := make([]byte, 0, len(text)+2)
	b = append(b, ' ')
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r < 128 {
			b = append(b, byte(r))
		} else {
			b = append(b, ' ')
		}
	}
	b = append(b, ' ')
	return string(b)
}

// SortedSkills returns the set as a sorted slice for stable output.
func SortedSkills(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// IntersectSkills returns a ∩ b.
func IntersectSkills(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for s := range a {
		if _, ok := b[s]; ok {
			out[s] = struct{}{}
		}
	}
	return out
}

// DiffSkills returns a − b.
func DiffSkills(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for s := range a {
		if _, ok := b[s]; !ok {
			out[s] = struct{}{}
		}
	}
	return out
}
