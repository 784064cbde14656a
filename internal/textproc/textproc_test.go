package textproc

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Senior Go Developer!", "senior go developer"},
		{"  C++  &  C#  ", "c c"},
		{"Data-Driven\tEngineering", "data driven engineering"},
		{"", ""},
		{"...", ""},
		{"Already normalized", "already normalized"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Backend (Python) Engineer")
	want := []string{"backend", "python", "engineer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
	if toks := Tokens("!!!"); toks != nil {
		t.Errorf("expected nil tokens for punctuation-only input, got %v", toks)
	}
}

func TestExtractSkills(t *testing.T) {
	text := "Experienced Python developer, C++ and machine learning. Worked with Node.js and CI/CD pipelines on AWS."
	skills := ExtractSkills(text)

	for _, want := range []string{"python", "c++", "machine learning", "node.js", "ci/cd", "aws"} {
		if _, ok := skills[want]; !ok {
			t.Errorf("expected skill %q in %v", want, SortedSkills(skills))
		}
	}
	// "c" alone is not in the vocabulary and "c++" must not fire bare "c" matches elsewhere.
	if _, ok := skills["java"]; ok {
		t.Error("java should not match")
	}
}

func TestExtractSkills_NoSubstringMatches(t *testing.T) {
	// "rest" must not match inside "restaurant", "go" terms are not in the
	// vocabulary as bare words, "java" must not fire on "javascript".
	skills := ExtractSkills("restaurant manager with javascript experience")
	if _, ok := skills["rest"]; ok {
		t.Error("rest matched inside restaurant")
	}
	if _, ok := skills["java"]; ok {
		t.Error("java matched inside javascript")
	}
	if _, ok := skills["javascript"]; !ok {
		t.Error("javascript should match")
	}
}

func TestExtractSkills_Deterministic(t *testing.T) {
	text := "python sql docker kubernetes react"
	a := SortedSkills(ExtractSkills(text))
	b := SortedSkills(ExtractSkills(text))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("extraction not deterministic: %v vs %v", a, b)
	}
	vocab := make(map[string]struct{}, len(SkillVocabulary))
	for _, s := range SkillVocabulary {
		vocab[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := vocab[s]; !ok {
			t.Errorf("extracted skill %q not in vocabulary", s)
		}
	}
}

func TestSkillSetOps(t *testing.T) {
	a := map[string]struct{}{"python": {}, "sql": {}, "docker": {}}
	b := map[string]struct{}{"python": {}, "react": {}}
	if got := SortedSkills(IntersectSkills(a, b)); !reflect.DeepEqual(got, []string{"python"}) {
		t.Errorf("intersect = %v", got)
	}
	if got := SortedSkills(DiffSkills(a, b)); !reflect.DeepEqual(got, []string{"docker", "sql"}) {
		t.Errorf("diff = %v", got)
	}
}
