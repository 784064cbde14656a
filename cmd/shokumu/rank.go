package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperjump/shokumu/internal/cli"
	"github.com/hyperjump/shokumu/internal/extract"
	"github.com/hyperjump/shokumu/internal/models"
	"github.com/hyperjump/shokumu/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank job postings against a query or resume",
	Long: "Ranks the default corpus against the query, or an ad-hoc posting list " +
		"when --live is given. Use --resume to rank against the text of a resume " +
		"file (PDF, DOCX, ODT, RTF, or plain text) instead of --query.",
	RunE: runRank,
}

var (
	rankQuery  string
	rankResume string
	rankLive   string
	rankTopN   int
	rankOutput string
)

func init() {
	rankCmd.Flags().StringVarP(&rankQuery, "query", "q", "", "Query text")
	rankCmd.Flags().StringVarP(&rankResume, "resume", "r", "", "Path to a resume file used as the query")
	rankCmd.Flags().StringVarP(&rankLive, "live", "l", "", "Path to a JSON file of live postings to rank instead of the default corpus")
	rankCmd.Flags().IntVarP(&rankTopN, "top", "n", 10, "Number of results to return")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "text", "Output format: text or json")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	query, err := resolveQuery()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("initialize embedder: %w", err)
	}
	defer embedder.Close()

	req := &models.RankRequest{Query: query, TopN: rankTopN}
	if rankLive != "" {
		live, err := loadLivePostings(rankLive)
		if err != nil {
			return err
		}
		req.Live = live
	}

	engine := ranking.NewEngine(cfg, embedder, logger)
	resp, err := engine.Rank(cmd.Context(), req)
	if err != nil {
		return err
	}
	return cli.WriteRankResults(os.Stdout, resp, cli.OutputFormat(rankOutput))
}

// resolveQuery returns the query text from --query or, when --resume is set,
// the flattened text of the resume file.
func resolveQuery() (string, error) {
	switch {
	case rankQuery != "" && rankResume != "":
		return "", fmt.Errorf("--query and --resume are mutually exclusive")
	case rankResume != "":
		text, err := extract.NewExtractor().Extract(rankResume)
		if err != nil {
			return "", err
		}
		return extract.Flatten(text), nil
	case rankQuery != "":
		return rankQuery, nil
	default:
		return "", fmt.Errorf("one of --query or --resume is required")
	}
}

func loadLivePostings(path string) ([]models.ExternalPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read live postings: %w", err)
	}
	var postings []models.ExternalPosting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("parse live postings: %w", err)
	}
	return postings, nil
}
