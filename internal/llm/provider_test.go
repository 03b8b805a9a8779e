package llm

import (
	"strings"
	"testing"

	"pubcheck/internal/model"
)

func TestNewProvider_DisabledIsNil(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error without API key")
	}
	provider, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Expected provider name 'openai', got %q", provider.Name())
	}
}

func TestNewSummarizer_DisabledIsNil(t *testing.T) {
	s, err := NewSummarizer(Config{Provider: ""}, 1, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s != nil {
		t.Error("Expected nil summarizer when disabled")
	}
}

func TestBuildPrompt_ContainsStats(t *testing.T) {
	report := model.Report{
		Document:   "draft.docx",
		Paragraphs: 12,
		Rows:       []model.ReportRow{{ParagraphIndex: 1}, {ParagraphIndex: 3}},
		Findings: []model.Finding{
			{Index: 1, Typos: []model.Typo{{Word: "eknomoi", Suggest: "ekonomi"}}},
			{Index: 3, Percent: []string{"12,5%"}, Punct: []string{"space before comma"}},
		},
	}

	prompt := BuildPrompt(report)
	for _, want := range []string{
		"draft.docx",
		"Paragraphs checked: 12",
		"Paragraphs with issues: 2",
		"Likely typos: 1",
		"eknomoi (suggested: ekonomi)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if !strings.Contains(prompt, "do not re-spell-check") {
		t.Error("Expected guardrail instruction in prompt")
	}
}

func TestBuildPrompt_SampleTyposCapped(t *testing.T) {
	var finding model.Finding
	for i := 0; i < 25; i++ {
		finding.Typos = append(finding.Typos, model.Typo{Word: "salah"})
	}
	prompt := BuildPrompt(model.Report{Document: "d", Findings: []model.Finding{finding}})
	if got := strings.Count(prompt, "- salah"); got != 10 {
		t.Errorf("Expected 10 sample typos, got %d", got)
	}
}
