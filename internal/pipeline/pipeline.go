// Package pipeline orchestrates the complete document check: extraction,
// classification, aggregation, persistence and report rendering.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pubcheck/internal/aggregate"
	"pubcheck/internal/classify"
	"pubcheck/internal/extract"
	"pubcheck/internal/lexicon"
	"pubcheck/internal/llm"
	"pubcheck/internal/model"
	"pubcheck/internal/spell"
	"pubcheck/internal/textutil"
	"pubcheck/internal/worker"
)

// Pipeline wires the check stages together. It satisfies
// worker.DocumentChecker so batch mode can fan documents out over it.
type Pipeline struct {
	classifier *classify.Classifier
	aggregator *aggregate.Aggregator
	ledger     *aggregate.Ledger
	typoLog    *aggregate.TypoLog
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. Word lists are loaded
// once here; a missing list degrades to an empty category with a warning.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	loader := lexicon.NewLoader()
	lex, warnings, err := loader.LoadLexicon(cfg.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("load lexicons: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	// The checker vocabulary is domain plus exempt terms: exempt inflections
	// must stem-resolve to known words, and suggestions must never propose a
	// foreign term.
	checker := spell.NewLexiconChecker(cfg.Spell.MaxEditDistance, cfg.Spell.SuggestionTTL, lex.Domain, lex.Exempt)

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM), cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		classifier: classify.New(lex, checker, cfg.Style),
		aggregator: aggregate.New(cfg.Output.PreviewRunes),
		ledger:     aggregate.NewLedger(cfg.LedgerPath()),
		typoLog:    aggregate.NewTypoLog(cfg.TypoLogPath()),
		renderer:   NewRenderer(cfg.Output.Dir),
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// CheckFile checks a single document and merges its findings into the
// persistent ledger and typo log. A document that yields no text is a valid
// empty report, not an error.
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	raw, err := extract.Extract(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A corrupt or unsupported document is not fatal: report nothing
		// to check instead of aborting a batch.
		fmt.Fprintf(os.Stderr, "Warning: extract %s: %v\n", filepath.Base(path), err)
		raw = nil
	}

	paragraphs := make([]model.Paragraph, 0, len(raw))
	for _, text := range raw {
		norm := textutil.Normalize(text)
		if norm == "" {
			continue
		}
		paragraphs = append(paragraphs, model.Paragraph{
			Index:      len(paragraphs),
			Raw:        text,
			Normalized: norm,
		})
	}

	report := &model.Report{
		Document:   filepath.Base(path),
		CheckedAt:  time.Now().UTC(),
		Paragraphs: len(paragraphs),
		Source:     paragraphs,
	}
	if len(paragraphs) == 0 {
		return report, nil
	}

	findings := worker.ClassifyAll(ctx, p.classifier, paragraphs, p.config.Concurrency.ClassifyWorkers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, deltas, typoRows := p.aggregator.Aggregate(report.Document, paragraphs, findings)
	report.Rows = rows
	report.Findings = findings

	if err := p.persist(ctx, deltas, typoRows); err != nil {
		return nil, err
	}

	// LLM notes come last and never alter findings.
	if p.summarizer != nil {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// persist merges ledger deltas and appends typo rows, creating the data
// directory on first use.
func (p *Pipeline) persist(ctx context.Context, deltas []model.LedgerEntry, typoRows []model.TypoRow) error {
	if len(deltas) == 0 && len(typoRows) == 0 {
		return nil
	}
	if err := os.MkdirAll(p.config.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	var errs []error
	if len(deltas) > 0 {
		if err := p.ledger.Merge(ctx, deltas); err != nil {
			errs = append(errs, fmt.Errorf("merge ledger: %w", err))
		}
	}
	if len(typoRows) > 0 {
		if err := p.typoLog.Append(ctx, typoRows); err != nil {
			errs = append(errs, fmt.Errorf("append typo log: %w", err))
		}
	}
	return errors.Join(errs...)
}

// RenderReport writes the report CSV, the optional annotated DOCX copy and
// the optional LLM notes, then prints a summary to stdout. Returned paths
// are those actually written.
func (p *Pipeline) RenderReport(report *model.Report, sourcePath string, verbose bool) error {
	csvPath, err := p.renderer.WriteCSV(report)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Printf("✓ Wrote report: %s\n", csvPath)
	}

	if p.config.Output.AnnotateDocx && len(report.Rows) > 0 {
		docxPath, err := p.renderer.WriteAnnotatedDocx(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write annotated copy: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote annotated copy: %s\n", docxPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled {
		notesPath, err := p.renderer.WriteLLMNotes(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM notes: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM notes: %s\n", notesPath)
		}
	}

	p.renderer.RenderSummary(report, sourcePath)
	return nil
}
