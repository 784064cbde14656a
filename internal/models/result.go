package models

import "fmt"

// RankRequest is a ranking request. Query is free text (a resume or a short
// search string). When Live is non-nil the request runs in live mode against
// the supplied postings instead of the default corpus.
type RankRequest struct {
	Query string            `json:"query"`
	TopN  int               `json:"top_n,omitempty"`
	Live  []ExternalPosting `json:"live,omitempty"`
}

// Validate checks the request and applies defaults to TopN.
func (r *RankRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("%w: query cannot be empty", ErrEmptyQuery)
	}
	if r.TopN <= 0 {
		r.TopN = 10
	}
	if r.TopN > 100 {
		r.TopN = 100
	}
	return nil
}

// IsLive reports whether the request carries an ad-hoc posting list.
func (r *RankRequest) IsLive() bool {
	return r.Live != nil
}

// MatchResult is one ranked posting. Scores are on a 0-100 display scale,
// rounded to two decimals; HybridScore is the weighted combination of the
// lexical and semantic scores.
type MatchResult struct {
	Position      int      `json:"corpus_position"`
	Title         string   `json:"job_title"`
	Description   string   `json:"job_description"`
	LexicalScore  float64  `json:"lexical_score"`
	SemanticScore float64  `json:"semantic_score"`
	HybridScore   float64  `json:"hybrid_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`

	// Passthrough fields, populated in live mode only.
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	ApplyLink string `json:"apply_link,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Via       string `json:"via,omitempty"`
	SourceID  string `json:"source_id,omitempty"`
}

// RankResponse is the response for a ranking request.
type RankResponse struct {
	Results   []MatchResult `json:"results"`
	Total     int           `json:"total"`
	QueryTime int64         `json:"query_time_ms"`
	Query     string        `json:"query"`
	Live      bool          `json:"live,omitempty"`
}
