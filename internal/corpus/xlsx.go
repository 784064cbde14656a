package corpus

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/shokumu/internal/models"
)

// loadXLSX reads postings from the first sheet of an Excel workbook.
// Row one is the header; columns are matched by name like the CSV source.
func loadXLSX(path string) ([]models.JobPosting, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrCorpusLoad, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", models.ErrCorpusLoad, path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: get rows for sheet %q: %v", models.ErrCorpusLoad, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", models.ErrCorpusLoad, sheets[0])
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}
	var postings []models.JobPosting
	for _, row := range rows[1:] {
		p := cols.posting(row)
		if p.Title == "" && p.Description == "" {
			continue
		}
		postings = append(postings, p)
	}
	return postings, nil
}
