package worker

import (
	"context"

	"pubcheck/internal/model"
)

// ParagraphClassifier classifies one normalized paragraph.
type ParagraphClassifier interface {
	Classify(index int, text string) model.Finding
}

// classifyJob classifies a single paragraph.
type classifyJob struct {
	pos        int // slot in the findings slice
	index      int
	text       string
	classifier ParagraphClassifier
}

// classifyResult carries the finding back with its slot so the caller can
// restore document order without deriving positions from paragraph indices.
type classifyResult struct {
	pos     int
	finding model.Finding
}

func (r *classifyResult) GetError() error { return nil }

// Execute classifies the paragraph. Classification of paragraph i never
// depends on its neighbors, so jobs are an embarrassingly parallel map.
func (j *classifyJob) Execute(ctx context.Context) Result {
	if ctx.Err() != nil {
		// Aborted batch: report a clean finding, consumers drop it.
		return &classifyResult{pos: j.pos, finding: model.Finding{Index: j.index}}
	}
	return &classifyResult{pos: j.pos, finding: j.classifier.Classify(j.index, j.text)}
}

// ClassifyAll classifies paragraphs in parallel and returns findings in
// paragraph order, one per input, so aggregation and annotation stay
// deterministic.
func ClassifyAll(ctx context.Context, classifier ParagraphClassifier, paragraphs []model.Paragraph, workers int) []model.Finding {
	// Pre-fill with clean findings so paragraphs skipped after a
	// cancellation still hold their own index.
	findings := make([]model.Finding, len(paragraphs))
	for i, p := range paragraphs {
		findings[i] = model.Finding{Index: p.Index}
	}
	if len(paragraphs) == 0 {
		return findings
	}

	if workers <= 1 || len(paragraphs) == 1 {
		for i, p := range paragraphs {
			if ctx.Err() != nil {
				continue
			}
			findings[i] = classifier.Classify(p.Index, p.Normalized)
		}
		return findings
	}

	pool := NewPool(workers)
	pool.Start()
	// Submission runs in its own goroutine while Wait drains below; the pool
	// buffers are bounded, so feeding every paragraph before consuming any
	// result would wedge once the buffers fill.
	go func() {
		defer pool.Close()
		for i, p := range paragraphs {
			if ctx.Err() != nil {
				// Stop feeding further paragraphs; already-queued work drains.
				return
			}
			pool.Submit(&classifyJob{pos: i, index: p.Index, text: p.Normalized, classifier: classifier})
		}
	}()
	for _, result := range pool.Wait() {
		r := result.(*classifyResult)
		findings[r.pos] = r.finding
	}
	return findings
}
