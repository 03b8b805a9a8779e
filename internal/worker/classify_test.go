package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"pubcheck/internal/model"
)

// slowClassifier flags every paragraph with its own text so tests can verify
// result placement, and sleeps to force out-of-order completion.
type slowClassifier struct {
	delay time.Duration
}

func (c *slowClassifier) Classify(index int, text string) model.Finding {
	if c.delay > 0 && index%2 == 0 {
		time.Sleep(c.delay)
	}
	return model.Finding{Index: index, Unknowns: []string{text}}
}

func makeParagraphs(texts ...string) []model.Paragraph {
	paras := make([]model.Paragraph, len(texts))
	for i, t := range texts {
		paras[i] = model.Paragraph{Index: i, Raw: t, Normalized: t}
	}
	return paras
}

func TestClassifyAll_RestoresParagraphOrder(t *testing.T) {
	paras := makeParagraphs("satu", "dua", "tiga", "empat", "lima", "enam")
	classifier := &slowClassifier{delay: 10 * time.Millisecond}

	findings := ClassifyAll(context.Background(), classifier, paras, 4)
	if len(findings) != len(paras) {
		t.Fatalf("Expected %d findings, got %d", len(paras), len(findings))
	}
	for i, f := range findings {
		if f.Index != i {
			t.Errorf("Expected finding %d at slot %d, got index %d", i, i, f.Index)
		}
		if !reflect.DeepEqual(f.Unknowns, []string{paras[i].Normalized}) {
			t.Errorf("Expected finding for %q at slot %d, got %v", paras[i].Normalized, i, f.Unknowns)
		}
	}
}

func TestClassifyAll_ManyParagraphsFewWorkers(t *testing.T) {
	// Far more paragraphs than the pool buffers can hold: submission must
	// keep flowing while results are drained, or the run never finishes.
	texts := make([]string, 60)
	for i := range texts {
		texts[i] = fmt.Sprintf("paragraf %d", i)
	}
	paras := makeParagraphs(texts...)

	findings := ClassifyAll(context.Background(), &slowClassifier{delay: time.Millisecond}, paras, 2)
	if len(findings) != len(paras) {
		t.Fatalf("Expected %d findings, got %d", len(paras), len(findings))
	}
	for i, f := range findings {
		if f.Index != i {
			t.Errorf("Expected index %d at slot %d, got %d", i, i, f.Index)
		}
		if !reflect.DeepEqual(f.Unknowns, []string{paras[i].Normalized}) {
			t.Errorf("Expected finding for %q at slot %d, got %v", paras[i].Normalized, i, f.Unknowns)
		}
	}
}

func TestClassifyAll_SerialPath(t *testing.T) {
	paras := makeParagraphs("satu", "dua")
	findings := ClassifyAll(context.Background(), &slowClassifier{}, paras, 1)
	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}
	if findings[0].Index != 0 || findings[1].Index != 1 {
		t.Errorf("Expected ordered findings, got %+v", findings)
	}
}

func TestClassifyAll_Empty(t *testing.T) {
	findings := ClassifyAll(context.Background(), &slowClassifier{}, nil, 4)
	if len(findings) != 0 {
		t.Errorf("Expected no findings, got %d", len(findings))
	}
}

func TestClassifyAll_CancelledContextYieldsCleanFindings(t *testing.T) {
	paras := makeParagraphs("satu", "dua", "tiga")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	findings := ClassifyAll(ctx, &slowClassifier{}, paras, 4)
	if len(findings) != len(paras) {
		t.Fatalf("Expected one finding per paragraph, got %d", len(findings))
	}
	for i, f := range findings {
		if f.Index != i {
			t.Errorf("Expected index %d at slot %d, got %d", i, i, f.Index)
		}
		if !f.Empty() {
			t.Errorf("Expected clean finding after cancellation, got %+v", f)
		}
	}
}

// countingChecker is a minimal DocumentChecker for batch plumbing tests.
type countingChecker struct{}

func (c *countingChecker) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	time.Sleep(time.Millisecond)
	return &model.Report{Document: filepath.Base(path)}, nil
}

func TestBatchProcessor_ManyDocumentsFewWorkers(t *testing.T) {
	paths := make([]string, 40)
	for i := range paths {
		paths[i] = fmt.Sprintf("docs/doc%02d.txt", i)
	}

	b := NewBatchProcessor(&countingChecker{}, 2)
	results := b.ProcessPaths(context.Background(), paths)
	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}
	seen := map[string]bool{}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("Expected no error for %s, got %v", r.Path, r.Error)
		}
		seen[r.Path] = true
	}
	if len(seen) != len(paths) {
		t.Errorf("Expected every document checked exactly once, got %d distinct", len(seen))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := strings.Join([]string{
		"# comment",
		"docs/a.docx",
		"",
		"docs/b.pdf",
		"docs/a.docx", // duplicate
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	paths, err := ReadPathsFromFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"docs/a.docx", "docs/b.pdf"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Expected %v, got %v", want, paths)
	}
}

func TestPool_CollectsAllResults(t *testing.T) {
	pool := NewPool(3)
	pool.Start()
	go func() {
		defer pool.Close()
		for i := 0; i < 10; i++ {
			pool.Submit(&classifyJob{pos: i, index: i, text: "teks", classifier: &slowClassifier{}})
		}
	}()
	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("Expected no error, got %v", r.GetError())
		}
	}
}
