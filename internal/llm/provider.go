// Package llm generates optional natural-language review notes for a
// finished report. The notes are advisory prose for the report reader;
// they are produced after aggregation and never alter findings.
package llm

import (
	"context"
	"fmt"
	"strings"

	"pubcheck/internal/model"
)

// Provider is an LLM backend able to summarize a report.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates review notes for the report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest is the input for review-note generation.
type SummarizeRequest struct {
	Report    model.Report
	Prompt    string // Optional custom prompt; default built from the report
	Model     string // Provider-specific model override
	MaxTokens int
}

// SummarizeResponse is the generated output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// NewProvider creates a provider from configuration. An empty provider name
// means the feature is disabled and yields (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.TimeoutSeconds,
		MaxTokens: mc.MaxTokens,
	}
}

// BuildPrompt constructs the default review-notes prompt from report
// statistics. The LLM sees counts and samples, not the document itself.
func BuildPrompt(report model.Report) string {
	typoCount := 0
	unknownCount := 0
	numericCount := 0
	punctCount := 0
	var sampleTypos []string

	for _, f := range report.Findings {
		typoCount += len(f.Typos)
		unknownCount += len(f.Unknowns)
		numericCount += len(f.Percent) + len(f.Numbers)
		punctCount += len(f.Punct)
		for _, t := range f.Typos {
			if len(sampleTypos) < 10 {
				if t.Suggest != "" {
					sampleTypos = append(sampleTypos, fmt.Sprintf("%s (suggested: %s)", t.Word, t.Suggest))
				} else {
					sampleTypos = append(sampleTypos, t.Word)
				}
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are reviewing the findings of an automated document quality check. The checker flags candidates only; it does not decide correctness.

RULES:
1. Describe patterns in the findings, do not re-spell-check the text.
2. If a category is empty, say the document is clean in that category.
3. Do not invent words or issues not listed below.

Document: %s
Paragraphs checked: %d
Paragraphs with issues: %d
Likely typos: %d
Vocabulary-growth candidates: %d
Numeric-format flags: %d
Punctuation-spacing flags: %d
`, report.Document, report.Paragraphs, len(report.Rows), typoCount, unknownCount, numericCount, punctCount)

	if len(sampleTypos) > 0 {
		fmt.Fprintf(&b, "\nSample typos:\n")
		for _, s := range sampleTypos {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	b.WriteString("\nProvide 3-4 sentences of review guidance for the editor: which categories deserve attention first and why.")
	return b.String()
}
