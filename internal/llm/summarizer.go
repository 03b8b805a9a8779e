package llm

import (
	"context"
	"fmt"

	"pubcheck/internal/model"
	"pubcheck/internal/worker"
)

// Summarizer wraps a provider with rate limiting and turns its output into
// the report's LLMSummary block.
type Summarizer struct {
	provider Provider
	limiter  *worker.Limiter
	config   Config
}

// NewSummarizer creates a summarizer, or (nil, nil) when no provider is
// configured.
func NewSummarizer(config Config, requestsPerSecond float64, burst int) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{
		provider: provider,
		limiter:  worker.NewLimiter(requestsPerSecond, burst),
		config:   config,
	}, nil
}

// GenerateSummary produces review notes for a finished report. The caller
// treats failures as warnings; a missing summary never fails a check.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}
