package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/shokumu/internal/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postings.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, `title,description,company,location,apply_link
Backend Engineer,Build services in go,Acme,Berlin,https://acme.test/1
Data Scientist,Machine learning with python,Globex,Remote,
,,,,
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (blank row skipped)", c.Len())
	}
	p, ok := c.At(0)
	if !ok {
		t.Fatal("At(0) not ok")
	}
	if p.Title != "Backend Engineer" || p.Company != "Acme" || p.ApplyLink != "https://acme.test/1" {
		t.Errorf("unexpected posting: %+v", p)
	}
	if p.Origin != models.OriginDefaultCorpus {
		t.Errorf("Origin = %v, want default corpus", p.Origin)
	}
	if c.SourcePath() != path {
		t.Errorf("SourcePath = %q", c.SourcePath())
	}
	if c.ModTime().IsZero() || c.LoadedAt().IsZero() {
		t.Error("ModTime/LoadedAt not recorded")
	}
}

func TestLoadCSVHeaderAliases(t *testing.T) {
	path := writeTempCSV(t, `job_title,job_description,company_name,job_id
DevOps Engineer,Kubernetes and terraform,Initech,j-42
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := c.At(0)
	if p.Title != "DevOps Engineer" || p.Company != "Initech" || p.SourceID != "j-42" {
		t.Errorf("alias columns not mapped: %+v", p)
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeTempCSV(t, `title,description,company
Engineer,Short row
Analyst,Reporting dashboards,Acme,extra cell
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	p, _ := c.At(0)
	if p.Company != "" {
		t.Errorf("missing cell should read empty, got %q", p.Company)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "absent.csv")
		}},
		{"unsupported extension", func(t *testing.T) string {
			p := filepath.Join(t.TempDir(), "postings.json")
			os.WriteFile(p, []byte("[]"), 0644)
			return p
		}},
		{"missing required columns", func(t *testing.T) string {
			return writeTempCSV(t, "company,location\nAcme,Berlin\n")
		}},
		{"empty source", func(t *testing.T) string {
			return writeTempCSV(t, "title,description\n")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if !errors.Is(err, models.ErrCorpusLoad) {
				t.Errorf("expected ErrCorpusLoad, got %v", err)
			}
		})
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postings.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"title", "description", "location"},
		{"Platform Engineer", "Build infrastructure with terraform", "Remote"},
		{"QA Engineer", "Automated testing with selenium", "Berlin"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	p, _ := c.At(1)
	if p.Title != "QA Engineer" || p.Location != "Berlin" {
		t.Errorf("unexpected posting: %+v", p)
	}
}

func TestFromExternal(t *testing.T) {
	c := FromExternal([]models.ExternalPosting{
		{Title: "  Backend Engineer  ", Description: "Go services", SourceID: "ext-1", Via: "LinkedIn"},
		{Title: "", Description: "   "},
		{Title: "Data Engineer", Description: "Pipelines"},
	})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (empty entry skipped)", c.Len())
	}
	p0, _ := c.At(0)
	if p0.Title != "Backend Engineer" {
		t.Errorf("title not trimmed: %q", p0.Title)
	}
	if p0.SourceID != "ext-1" || p0.Via != "LinkedIn" {
		t.Errorf("passthrough fields lost: %+v", p0)
	}
	if p0.Origin != models.OriginExternal {
		t.Errorf("Origin = %v, want external", p0.Origin)
	}
	p1, _ := c.At(1)
	if p1.SourceID == "" {
		t.Error("missing source id should be synthesized")
	}
	if c.SourcePath() != "" || !c.ModTime().IsZero() {
		t.Error("live corpus has no tabular source")
	}
}

func TestAtBounds(t *testing.T) {
	c := FromExternal([]models.ExternalPosting{{Title: "One", Description: "posting"}})
	if _, ok := c.At(-1); ok {
		t.Error("At(-1) should not be ok")
	}
	if _, ok := c.At(1); ok {
		t.Error("At(1) should not be ok")
	}
}

func TestTextAlignment(t *testing.T) {
	c := FromExternal([]models.ExternalPosting{
		{Title: "Backend Engineer", Description: "Go services"},
		{Title: "Data Engineer", Description: "Pipelines"},
	})
	lex := c.LexicalTexts()
	emb := c.EmbeddingTexts()
	if len(lex) != c.Len() || len(emb) != c.Len() {
		t.Fatal("texts not aligned with corpus length")
	}
	if lex[0] != "Backend Engineer Go services" {
		t.Errorf("lexical text = %q", lex[0])
	}
	if emb[0] != "Backend Engineer. Go services" {
		t.Errorf("embedding text = %q", emb[0])
	}
}
