package model

import (
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete pubcheck configuration.
type Config struct {
	Lexicon     LexiconConfig     `yaml:"lexicon" mapstructure:"lexicon"`
	Style       StyleConfig       `yaml:"style" mapstructure:"style"`
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Spell       SpellConfig       `yaml:"spell" mapstructure:"spell"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// LexiconConfig locates the word-list files. A missing file degrades to an
// empty set for that category; it never aborts a run.
type LexiconConfig struct {
	DomainPath  string `yaml:"domain_path" mapstructure:"domain_path"`   // Primary-language vocabulary
	ForeignPath string `yaml:"foreign_path" mapstructure:"foreign_path"` // Secondary-language vocabulary
	ExemptPath  string `yaml:"exempt_path" mapstructure:"exempt_path"`   // Terms excluded from all flagging
}

// StyleConfig is the numeric house style. Both percent conventions exist in
// the wild, so the accepted form is explicit configuration rather than a
// hardcoded guess.
type StyleConfig struct {
	// Thousands is "dot" or "comma": the accepted grouping separator.
	// Numbers grouped with the other separator are flagged.
	Thousands string `yaml:"thousands" mapstructure:"thousands"`
	// PercentDecimal is "comma" or "dot": the house decimal separator
	// inside percent values. Both notations are always collected for the
	// report; the non-house one is reported as the likely error, the house
	// one carries a guideline note.
	PercentDecimal string `yaml:"percent_decimal" mapstructure:"percent_decimal"`
}

// DataConfig locates the persistent ledger and typo log.
type DataConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`                 // Directory for persistent state
	LedgerFile string `yaml:"ledger_file" mapstructure:"ledger_file"` // Unknown-word ledger CSV
	TypoLog    string `yaml:"typo_log" mapstructure:"typo_log"`       // Append-only typo log CSV
}

// SpellConfig tunes the fallback checker.
type SpellConfig struct {
	MaxEditDistance int           `yaml:"max_edit_distance" mapstructure:"max_edit_distance"`
	SuggestionTTL   time.Duration `yaml:"suggestion_ttl" mapstructure:"suggestion_ttl"`
}

// ConcurrencyConfig controls parallelism.
type ConcurrencyConfig struct {
	ClassifyWorkers int `yaml:"classify_workers" mapstructure:"classify_workers"` // Parallel paragraph classification
	BatchWorkers    int `yaml:"batch_workers" mapstructure:"batch_workers"`       // Parallel documents in batch mode
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"` // Output directory for reports
	Verbose      bool   `yaml:"verbose" mapstructure:"verbose"`
	PreviewRunes int    `yaml:"preview_runes" mapstructure:"preview_runes"` // Preview/context truncation length
	AnnotateDocx bool   `yaml:"annotate_docx" mapstructure:"annotate_docx"` // Write annotated DOCX copy
}

// LLMConfig configures the optional review-notes summarizer.
// The summarizer never affects findings.
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			DomainPath:  filepath.Join("wordlists", "domain_words.txt"),
			ForeignPath: filepath.Join("wordlists", "foreign_words.txt"),
			ExemptPath:  filepath.Join("wordlists", "exempt_words.txt"),
		},
		Style: StyleConfig{
			Thousands:      "dot",
			PercentDecimal: "dot",
		},
		Data: DataConfig{
			Dir:        "data",
			LedgerFile: "unknown_words.csv",
			TypoLog:    "typo_log.csv",
		},
		Spell: SpellConfig{
			MaxEditDistance: 2,
			SuggestionTTL:   30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ClassifyWorkers: runtime.NumCPU(),
			BatchWorkers:    4,
		},
		Output: OutputConfig{
			Dir:          ".",
			PreviewRunes: 200,
			AnnotateDocx: true,
		},
		LLM: LLMConfig{
			Provider:          "",
			TimeoutSeconds:    30,
			MaxTokens:         1000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
	}
}

// LedgerPath returns the full path of the unknown-word ledger.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Data.Dir, c.Data.LedgerFile)
}

// TypoLogPath returns the full path of the typo log.
func (c *Config) TypoLogPath() string {
	return filepath.Join(c.Data.Dir, c.Data.TypoLog)
}
