package pipeline

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pubcheck/internal/model"
)

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()

	wordlists := filepath.Join(dir, "wordlists")
	if err := os.MkdirAll(wordlists, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write := func(name, content string) string {
		path := filepath.Join(wordlists, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	cfg := model.DefaultConfig()
	cfg.Lexicon.DomainPath = write("domain.txt", "tingkat\ntumbuh\ntahun\ncapai\norang\nnaik\n")
	cfg.Lexicon.ForeignPath = write("foreign.txt", "framework\n")
	cfg.Lexicon.ExemptPath = write("exempt.txt", "jakarta\n")
	cfg.Data.Dir = filepath.Join(dir, "data")
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Concurrency.ClassifyWorkers = 2
	return cfg
}

func TestPipeline_CheckTextFile(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	docPath := filepath.Join(t.TempDir(), "draft.txt")
	content := "Tingkat pertumbuhan 12,5% tahun 2023 mencapai 15000 orang\n\n" +
		"Jakarta naik dengan framework baru\n\n" +
		"eknomoi tahun ini\n"
	if err := os.WriteFile(docPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	report, err := p.CheckFile(context.Background(), docPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Document != "draft.txt" {
		t.Errorf("Expected document name 'draft.txt', got %q", report.Document)
	}
	if report.Paragraphs != 3 {
		t.Fatalf("Expected 3 paragraphs, got %d", report.Paragraphs)
	}
	if len(report.Findings) != 3 {
		t.Fatalf("Expected 3 findings, got %d", len(report.Findings))
	}

	// Paragraph 1: numeric flags, no typos.
	f1 := report.Findings[0]
	if f1.Index != 0 {
		t.Errorf("Expected zero-based paragraph index, got %d", f1.Index)
	}
	if len(f1.Typos) != 0 {
		t.Errorf("Expected no typos in paragraph 1, got %v", f1.Typos)
	}
	if len(f1.Percent) != 1 || f1.Percent[0] != "12,5%" {
		t.Errorf("Expected percent flag, got %v", f1.Percent)
	}
	if len(f1.Numbers) != 1 || f1.Numbers[0] != "15000" {
		t.Errorf("Expected number flag, got %v", f1.Numbers)
	}

	// Paragraph 2: foreign term flagged, exempt term passed.
	f2 := report.Findings[1]
	if len(f2.Foreign) != 1 || f2.Foreign[0] != "framework" {
		t.Errorf("Expected foreign flag, got %v", f2.Foreign)
	}
	for _, typo := range f2.Typos {
		if strings.EqualFold(typo.Word, "jakarta") {
			t.Errorf("Exempt term flagged as typo: %v", f2.Typos)
		}
	}

	// Paragraph 3: typo with suggestion.
	f3 := report.Findings[2]
	if f3.Index != 2 {
		t.Errorf("Expected zero-based paragraph index, got %d", f3.Index)
	}
	foundTypo := false
	for _, typo := range f3.Typos {
		if typo.Word == "eknomoi" {
			foundTypo = true
		}
	}
	if !foundTypo {
		t.Errorf("Expected 'eknomoi' typo, got %v", f3.Typos)
	}

	// Persistent stores were written.
	if _, err := os.Stat(cfg.TypoLogPath()); err != nil {
		t.Errorf("Expected typo log written: %v", err)
	}
}

func TestPipeline_ExemptInflectionIsUnknownNotTypo(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// "jakartanya" stems to the exempt term "jakarta": the checker vocabulary
	// includes exempt words, so the inflection is a vocabulary-growth
	// candidate, never a typo with some unrelated suggestion.
	docPath := filepath.Join(t.TempDir(), "exempt.txt")
	if err := os.WriteFile(docPath, []byte("jakartanya naik tahun ini\n"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	report, err := p.CheckFile(context.Background(), docPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(report.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(report.Findings))
	}
	f := report.Findings[0]
	for _, typo := range f.Typos {
		if strings.EqualFold(typo.Word, "jakartanya") {
			t.Errorf("Exempt inflection flagged as typo: %v", f.Typos)
		}
	}
	found := false
	for _, w := range f.Unknowns {
		if w == "jakartanya" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'jakartanya' among unknowns, got %v", f.Unknowns)
	}
}

func TestPipeline_EmptyDocumentIsNothingToCheck(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	docPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(docPath, []byte("   \n  \n"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	report, err := p.CheckFile(context.Background(), docPath)
	if err != nil {
		t.Fatalf("Expected no error for empty document, got %v", err)
	}
	if report.Paragraphs != 0 || len(report.Rows) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

func TestPipeline_MissingFileIsError(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := p.CheckFile(context.Background(), filepath.Join(t.TempDir(), "absent.docx")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestPipeline_CorruptDocumentReportsNothingToCheck(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	docPath := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(docPath, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	report, err := p.CheckFile(context.Background(), docPath)
	if err != nil {
		t.Fatalf("Expected no error for corrupt document, got %v", err)
	}
	if report.Paragraphs != 0 {
		t.Errorf("Expected nothing to check, got %d paragraphs", report.Paragraphs)
	}
}

func TestRenderer_WriteCSV(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	report := &model.Report{
		Document: "draft.docx",
		Rows: []model.ReportRow{
			{ParagraphIndex: 2, Preview: "teks", Typos: "eknomoi", Percent: "12,5%"},
		},
	}

	path, err := r.WriteCSV(report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "report_draft_") {
		t.Errorf("Expected report file name with document stem, got %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected readable report, got %v", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d records", len(records))
	}
	if records[0][0] != "paragraph_index" || records[0][7] != "english" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][0] != "2" || records[1][2] != "eknomoi" || records[1][4] != "12,5%" {
		t.Errorf("Unexpected row: %v", records[1])
	}
}
