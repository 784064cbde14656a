// Package models defines core data structures for job postings, rank requests, and match results.
package models

// PostingOrigin tags where a JobPosting came from.
type PostingOrigin string

const (
	// OriginDefaultCorpus marks postings loaded from the file-backed default corpus.
	OriginDefaultCorpus PostingOrigin = "default"
	// OriginExternal marks postings supplied by a live job-source adapter for one call.
	OriginExternal PostingOrigin = "external"
)

// JobPosting is one posting in a corpus. Immutable once loaded.
type JobPosting struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Company     string        `json:"company,omitempty"`
	Location    string        `json:"location,omitempty"`
	SourceID    string        `json:"source_id,omitempty"`
	ApplyLink   string        `json:"apply_link,omitempty"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Via         string        `json:"via,omitempty"`
	Origin      PostingOrigin `json:"-"`
}

// LexicalText is the text the lexical index is built from.
func (p *JobPosting) LexicalText() string {
	return p.Title + " " + p.Description
}

// EmbeddingText is the text the semantic index encodes.
func (p *JobPosting) EmbeddingText() string {
	return p.Title + ". " + p.Description
}

// ExternalPosting is the wire shape of a live posting supplied by a job-search adapter.
// It is normalized into a JobPosting before ranking.
type ExternalPosting struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Via         string `json:"via,omitempty"`
	SourceID    string `json:"source_id,omitempty"`
	ApplyLink   string `json:"apply_link,omitempty"`
}
