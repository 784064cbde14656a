package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/shokumu/internal/models"
)

// columnMap maps a header row to posting field indices. -1 means absent.
type columnMap struct {
	title, description, company, location, sourceID, applyLink, thumbnail, via int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{title: -1, description: -1, company: -1, location: -1,
		sourceID: -1, applyLink: -1, thumbnail: -1, via: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title", "job_title":
			cols.title = i
		case "description", "job_description":
			cols.description = i
		case "company", "company_name":
			cols.company = i
		case "location":
			cols.location = i
		case "source_id", "job_id":
			cols.sourceID = i
		case "apply_link", "link":
			cols.applyLink = i
		case "thumbnail":
			cols.thumbnail = i
		case "via":
			cols.via = i
		}
	}
	if cols.title == -1 || cols.description == -1 {
		return cols, fmt.Errorf("%w: source header missing title/description columns", models.ErrCorpusLoad)
	}
	return cols, nil
}

func (cols columnMap) posting(row []string) models.JobPosting {
	get := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return models.JobPosting{
		Title:       get(cols.title),
		Description: get(cols.description),
		Company:     get(cols.company),
		Location:    get(cols.location),
		SourceID:    get(cols.sourceID),
		ApplyLink:   get(cols.applyLink),
		Thumbnail:   get(cols.thumbnail),
		Via:         get(cols.via),
	}
}

func loadCSV(path string) ([]models.JobPosting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrCorpusLoad, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated; missing cells read as empty

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", models.ErrCorpusLoad, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var postings []models.JobPosting
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", models.ErrCorpusLoad, err)
		}
		p := cols.posting(row)
		if p.Title == "" && p.Description == "" {
			continue
		}
		postings = append(postings, p)
	}
	return postings, nil
}
