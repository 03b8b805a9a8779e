package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pubcheck/internal/model"
	"pubcheck/internal/pipeline"
)

var (
	outputDir    string
	domainPath   string
	foreignPath  string
	exemptPath   string
	styleThous   string
	stylePercent string
	noAnnotate   bool
	checkTimeout time.Duration
	llmEnabled   bool
	llmModel     string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a single document and generate a findings report",
	Long: `Check extracts paragraph text from a document and flags:
- Likely typos (with a closest-match suggestion)
- Unknown words (vocabulary-growth candidates, merged into the ledger)
- Numeric-format inconsistencies (thousands grouping, percent notation)
- Punctuation-spacing violations
- Foreign-language terms that should be typographically marked

Example:
  pubcheck check draft.docx
  pubcheck check report.pdf --output-dir ./reports --style-thousands dot
  pubcheck check draft.docx --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for report files (default: config)")
	checkCmd.Flags().BoolVar(&noAnnotate, "no-annotate", false, "skip the annotated DOCX copy")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall check timeout")

	// Lexicon flags
	checkCmd.Flags().StringVar(&domainPath, "domain-words", "", "domain word list path (default: config)")
	checkCmd.Flags().StringVar(&foreignPath, "foreign-words", "", "foreign word list path (default: config)")
	checkCmd.Flags().StringVar(&exemptPath, "exempt-words", "", "exempt word list path (default: config)")

	// Style flags
	checkCmd.Flags().StringVar(&styleThous, "style-thousands", "", "accepted thousands separator: dot or comma (default: config)")
	checkCmd.Flags().StringVar(&stylePercent, "style-percent", "", "accepted percent decimal separator: comma or dot (default: config)")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM review notes")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Word lists: %s, %s, %s\n",
			cfg.Lexicon.DomainPath, cfg.Lexicon.ForeignPath, cfg.Lexicon.ExemptPath)
		fmt.Fprintf(os.Stderr, "Style: %s thousands, %s percent decimal\n",
			cfg.Style.Thousands, cfg.Style.PercentDecimal)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.CheckFile(ctx, path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d paragraphs\n", report.Paragraphs)
		fmt.Fprintf(os.Stderr, "✓ Flagged %d paragraphs\n", len(report.Rows))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated review notes using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, path, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// applyCheckFlags overlays check command flags onto the loaded config.
func applyCheckFlags(cfg *model.Config) error {
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if domainPath != "" {
		cfg.Lexicon.DomainPath = domainPath
	}
	if foreignPath != "" {
		cfg.Lexicon.ForeignPath = foreignPath
	}
	if exemptPath != "" {
		cfg.Lexicon.ExemptPath = exemptPath
	}
	if styleThous != "" {
		cfg.Style.Thousands = styleThous
	}
	if stylePercent != "" {
		cfg.Style.PercentDecimal = stylePercent
	}
	if noAnnotate {
		cfg.Output.AnnotateDocx = false
	}
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return nil
}
