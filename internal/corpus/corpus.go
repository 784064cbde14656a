// Package corpus loads job postings from a tabular source into an ordered,
// immutable in-memory table, addressable by position.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/shokumu/internal/models"
)

// Corpus is an ordered snapshot of postings. Positions are stable for the
// lifetime of one load; a reload produces a new Corpus and invalidates all
// previously issued positions.
type Corpus struct {
	postings   []models.JobPosting
	sourcePath string
	modTime    time.Time
	loadedAt   time.Time
}

// Load reads postings from the tabular source at path. The format is chosen
// by extension: .csv, .xlsx, or a SQLite database (.db, .sqlite, .sqlite3).
// Returns models.ErrCorpusLoad when the source is missing or malformed.
func Load(path string) (*Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", models.ErrCorpusLoad, path, err)
	}

	var postings []models.JobPosting
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		postings, err = loadCSV(path)
	case ".xlsx":
		postings, err = loadXLSX(path)
	case ".db", ".sqlite", ".sqlite3":
		postings, err = loadSQLite(path)
	default:
		return nil, fmt.Errorf("%w: unsupported source format %q", models.ErrCorpusLoad, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, fmt.Errorf("%w: source %s contains no postings", models.ErrCorpusLoad, path)
	}
	for i := range postings {
		postings[i].Origin = models.OriginDefaultCorpus
	}

	return &Corpus{
		postings:   postings,
		sourcePath: path,
		modTime:    info.ModTime(),
		loadedAt:   time.Now(),
	}, nil
}

// FromExternal builds an ephemeral corpus from live postings supplied by a
// job-search adapter, normalized to the same shape as default postings.
// Entries with neither title nor description are skipped; missing source ids
// get a synthetic one so results stay addressable downstream.
func FromExternal(external []models.ExternalPosting) *Corpus {
	postings := make([]models.JobPosting, 0, len(external))
	for _, e := range external {
		if strings.TrimSpace(e.Title) == "" && strings.TrimSpace(e.Description) == "" {
			continue
		}
		sourceID := e.SourceID
		if sourceID == "" {
			sourceID = uuid.NewString()
		}
		postings = append(postings, models.JobPosting{
			Title:       strings.TrimSpace(e.Title),
			Description: strings.TrimSpace(e.Description),
			Company:     e.Company,
			Location:    e.Location,
			SourceID:    sourceID,
			ApplyLink:   e.ApplyLink,
			Thumbnail:   e.Thumbnail,
			Via:         e.Via,
			Origin:      models.OriginExternal,
		})
	}
	return &Corpus{postings: postings, loadedAt: time.Now()}
}

// Len returns the number of postings.
func (c *Corpus) Len() int {
	return len(c.postings)
}

// At returns the posting at position i. ok is false when i is out of bounds,
// which can happen when a scored position outlives a corpus reload.
func (c *Corpus) At(i int) (*models.JobPosting, bool) {
	if i < 0 || i >= len(c.postings) {
		return nil, false
	}
	return &c.postings[i], true
}

// SourcePath returns the tabular source path; empty for live corpora.
func (c *Corpus) SourcePath() string {
	return c.sourcePath
}

// ModTime returns the source's last-modified time at load; zero for live corpora.
func (c *Corpus) ModTime() time.Time {
	return c.modTime
}

// LoadedAt returns when this snapshot was built.
func (c *Corpus) LoadedAt() time.Time {
	return c.loadedAt
}

// LexicalTexts returns the per-posting text the lexical index is fitted on,
// aligned with corpus positions.
func (c *Corpus) LexicalTexts() []string {
	out := make([]string, len(c.postings))
	for i := range c.postings {
		out[i] = c.postings[i].LexicalText()
	}
	return out
}

// EmbeddingTexts returns the per-posting text the semantic index encodes,
// aligned with corpus positions.
func (c *Corpus) EmbeddingTexts() []string {
	out := make([]string, len(c.postings))
	for i := range c.postings {
		out[i] = c.postings[i].EmbeddingText()
	}
	return out
}
