package model

import "time"

// Report is the complete result of checking one document.
type Report struct {
	Document   string      `json:"document"`           // Base name of the checked file
	CheckedAt  time.Time   `json:"checked_at"`         // When the check ran
	Paragraphs int         `json:"paragraphs"`         // Total paragraphs examined
	Rows       []ReportRow `json:"rows"`               // One row per paragraph with issues
	Findings   []Finding   `json:"findings,omitempty"` // Full findings, paragraph order

	// Source carries the extracted paragraphs so the annotation engine can
	// re-walk the original text. Not serialized with the report.
	Source []Paragraph `json:"-"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM review notes (never affect findings)
}

// ReportRow is one tabular report line for a paragraph with at least one
// non-empty finding collection. List cells are semicolon-joined.
type ReportRow struct {
	ParagraphIndex int    `json:"paragraph_index"` // Zero-based, stable across the pipeline
	Preview        string `json:"preview"`         // Normalized text truncated to 200 runes
	Typos          string `json:"typos"`
	Unknowns       string `json:"unknowns"`
	Percent        string `json:"pct"`
	Numbers        string `json:"numbers"`
	Punct          string `json:"punct"`
	English        string `json:"english"`
}

// LedgerEntry is one row of the persistent unknown-word ledger, keyed by word.
type LedgerEntry struct {
	Word         string `json:"word"`
	Frequency    int    `json:"frequency"`      // Total occurrences seen across runs
	FirstSeenDoc string `json:"first_seen_doc"` // Document that first introduced the word
	Context      string `json:"context"`        // Sample paragraph preview, ≤200 runes
}

// TypoRow is one append-only typo-log row. Rows are never deduplicated:
// every occurrence is kept for later manual audit.
type TypoRow struct {
	Doc            string `json:"doc"`
	ParagraphIndex int    `json:"paragraph_index"`
	Word           string `json:"word"`
	Suggest        string `json:"suggest"`
}

// LLMSummary contains optional LLM-generated review notes.
// These never alter findings and are clearly separated in the output.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
