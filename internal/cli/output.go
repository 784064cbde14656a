// Package cli provides output formatting for the Shokumu CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/shokumu/internal/models"
	"github.com/hyperjump/shokumu/pkg/utils"
)

// OutputFormat is the format for rank result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteRankResults writes rank results to w in the given format.
func WriteRankResults(w io.Writer, response *models.RankResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeRankResultsText(w, response)
		return nil
	}
}

func writeRankResultsText(w io.Writer, response *models.RankResponse) {
	mode := "default corpus"
	if response.Live {
		mode = "live"
	}
	fmt.Fprintf(w, "\n%d matches in %dms (%s)\n\n", response.Total, response.QueryTime, mode)
	for i, r := range response.Results {
		writeOneResult(w, i+1, &r)
	}
}

func writeOneResult(w io.Writer, rank int, r *models.MatchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "%d. %s\n", rank, r.Title)
	fmt.Fprintf(w, "   Score: %.2f (lexical %.2f, semantic %.2f)\n", r.HybridScore, r.LexicalScore, r.SemanticScore)
	if r.Company != "" || r.Location != "" {
		fmt.Fprintf(w, "   %s\n", strings.TrimSpace(r.Company+"  "+r.Location))
	}
	if len(r.MatchedSkills) > 0 {
		fmt.Fprintf(w, "   Matched skills: %s\n", strings.Join(r.MatchedSkills, ", "))
	}
	if len(r.MissingSkills) > 0 {
		fmt.Fprintf(w, "   Missing skills: %s\n", strings.Join(r.MissingSkills, ", "))
	}
	if r.ApplyLink != "" {
		fmt.Fprintf(w, "   Apply: %s\n", r.ApplyLink)
	}
	if r.Description != "" {
		fmt.Fprintf(w, "   %s\n", utils.Truncate(r.Description, 200))
	}
}
