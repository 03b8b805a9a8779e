package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"pubcheck/internal/model"
)

// DocumentChecker checks one document end to end.
type DocumentChecker interface {
	CheckFile(ctx context.Context, path string) (*model.Report, error)
}

// CheckJob is a single-document check job.
type CheckJob struct {
	Path    string
	Checker DocumentChecker
}

// Execute runs the check.
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckFile(ctx, j.Path)
	return &CheckResult{Path: j.Path, Report: report, Error: err}
}

// CheckResult is the outcome of a document check job.
type CheckResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check.
func (r *CheckResult) GetError() error { return r.Error }

// BatchProcessor checks multiple documents concurrently. Ledger and typo-log
// merges serialize on their lock files, so concurrent documents never lose
// updates.
type BatchProcessor struct {
	checker     DocumentChecker
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(checker DocumentChecker, concurrency int) *BatchProcessor {
	return &BatchProcessor{checker: checker, concurrency: concurrency}
}

// ProcessPaths checks the given files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	// Submit from a separate goroutine so Wait can drain results while
	// documents are still being queued; a batch longer than the pool buffers
	// would otherwise block in Submit.
	go func() {
		defer pool.Close()
		for _, path := range paths {
			if ctx.Err() != nil {
				return
			}
			pool.Submit(&CheckJob{Path: path, Checker: b.checker})
		}
	}()

	results := pool.Wait()
	checkResults := make([]*CheckResult, 0, len(results))
	for _, result := range results {
		checkResults = append(checkResults, result.(*CheckResult))
	}
	return checkResults
}

// ProcessFile reads document paths from a list file and checks them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*CheckResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file, one per line.
// Blank lines and #-comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
