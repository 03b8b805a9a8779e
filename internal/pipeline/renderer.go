package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pubcheck/internal/annotate"
	"pubcheck/internal/model"
)

var reportHeader = []string{"paragraph_index", "preview", "typos", "unknowns", "pct", "numbers", "punct", "english"}

// Renderer writes check results to the output directory and prints the
// stdout summary. Output file names carry the document stem and run date so
// repeated checks never overwrite each other within a day boundary.
type Renderer struct {
	outDir string
}

// NewRenderer creates a renderer writing into outDir.
func NewRenderer(outDir string) *Renderer {
	if outDir == "" {
		outDir = "."
	}
	return &Renderer{outDir: outDir}
}

func (r *Renderer) stamp(report *model.Report) string {
	return report.CheckedAt.Format("20060102")
}

func docStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// WriteCSV writes the tabular report and returns its path. A clean document
// still produces a report with only the header row.
func (r *Renderer) WriteCSV(report *model.Report) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.outDir, fmt.Sprintf("report_%s_%s.csv", docStem(report.Document), r.stamp(report)))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(reportHeader)
	for _, row := range report.Rows {
		if writeErr != nil {
			break
		}
		writeErr = w.Write([]string{
			strconv.Itoa(row.ParagraphIndex),
			row.Preview,
			row.Typos,
			row.Unknowns,
			row.Percent,
			row.Numbers,
			row.Punct,
			row.English,
		})
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return "", writeErr
	}
	return path, nil
}

// WriteAnnotatedDocx writes the marked-up document copy and returns its path.
func (r *Renderer) WriteAnnotatedDocx(report *model.Report) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.outDir, fmt.Sprintf("annotated_%s_%s.docx", docStem(report.Document), r.stamp(report)))
	if err := annotate.WriteDocx(path, report.Source, report.Findings); err != nil {
		return "", err
	}
	return path, nil
}

// WriteLLMNotes writes the optional review notes beside the report.
func (r *Renderer) WriteLLMNotes(report *model.Report) (string, error) {
	if report.LLM == nil || report.LLM.SummaryMD == "" {
		return "", fmt.Errorf("no LLM notes to write")
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.outDir, fmt.Sprintf("report_%s_%s.summary.md", docStem(report.Document), r.stamp(report)))

	var b strings.Builder
	fmt.Fprintf(&b, "# Review notes: %s\n\n", report.Document)
	fmt.Fprintf(&b, "_Generated %s by %s (%s). Advisory only; findings above are rule-based._\n\n",
		report.CheckedAt.Format(time.RFC3339), report.LLM.Provider, report.LLM.Model)
	b.WriteString(report.LLM.SummaryMD)
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// RenderSummary prints a per-category overview of the check to stdout.
func (r *Renderer) RenderSummary(report *model.Report, sourcePath string) {
	fmt.Println()
	fmt.Printf("Document:   %s\n", sourcePath)
	fmt.Printf("Paragraphs: %d\n", report.Paragraphs)

	if report.Paragraphs == 0 {
		fmt.Println("Result:     nothing to check")
		return
	}
	if len(report.Rows) == 0 {
		fmt.Println("Result:     clean, no issues found")
		return
	}

	var typos, unknowns, numeric, punct, english int
	for _, f := range report.Findings {
		typos += len(f.Typos)
		unknowns += len(f.Unknowns)
		numeric += len(f.Percent) + len(f.Numbers)
		punct += len(f.Punct)
		english += len(f.Foreign)
	}

	fmt.Printf("Flagged:    %d of %d paragraphs\n", len(report.Rows), report.Paragraphs)
	fmt.Println()
	fmt.Printf("  %-24s %d\n", "Likely typos:", typos)
	fmt.Printf("  %-24s %d\n", "Unknown words:", unknowns)
	fmt.Printf("  %-24s %d\n", "Numeric-format flags:", numeric)
	fmt.Printf("  %-24s %d\n", "Punctuation flags:", punct)
	fmt.Printf("  %-24s %d\n", "Foreign terms:", english)
}
