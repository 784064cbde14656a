package corpus

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/shokumu/internal/models"
)

// loadSQLite reads postings from the jobs table of a SQLite database.
// The source is read-only: the engine never writes back to it.
func loadSQLite(path string) ([]models.JobPosting, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: open database %s: %v", models.ErrCorpusLoad, path, err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT title, description,
		       COALESCE(company, ''), COALESCE(location, ''),
		       COALESCE(source_id, ''), COALESCE(apply_link, ''),
		       COALESCE(thumbnail, ''), COALESCE(via, '')
		FROM jobs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: query jobs table: %v", models.ErrCorpusLoad, err)
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		var p models.JobPosting
		if err := rows.Scan(&p.Title, &p.Description, &p.Company, &p.Location,
			&p.SourceID, &p.ApplyLink, &p.Thumbnail, &p.Via); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", models.ErrCorpusLoad, err)
		}
		if p.Title == "" && p.Description == "" {
			continue
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", models.ErrCorpusLoad, err)
	}
	return postings, nil
}
