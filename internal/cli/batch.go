package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pubcheck/internal/pipeline"
	"pubcheck/internal/worker"
)

var (
	batchWorkers int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple documents from a list file in parallel",
	Long: `Batch processes multiple documents concurrently:
- Read document paths from input file (one per line, # comments allowed)
- Check documents in parallel with configurable worker count
- Write an individual report per document
- Merge all unknown words into one shared ledger

Concurrent ledger merges are serialized by a lock file, so two documents
seeing the same word never lose an update.

Example:
  pubcheck batch drafts.txt
  pubcheck batch drafts.txt --workers 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent documents (default: config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for report files (default: config)")
	batchCmd.Flags().BoolVar(&noAnnotate, "no-annotate", false, "skip annotated DOCX copies")

	// Lexicon and style flags shared with check
	batchCmd.Flags().StringVar(&domainPath, "domain-words", "", "domain word list path (default: config)")
	batchCmd.Flags().StringVar(&foreignPath, "foreign-words", "", "foreign word list path (default: config)")
	batchCmd.Flags().StringVar(&exemptPath, "exempt-words", "", "exempt word list path (default: config)")
	batchCmd.Flags().StringVar(&styleThous, "style-thousands", "", "accepted thousands separator: dot or comma (default: config)")
	batchCmd.Flags().StringVar(&stylePercent, "style-percent", "", "accepted percent decimal separator: comma or dot (default: config)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM review notes")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cfg); err != nil {
		return err
	}
	if batchWorkers > 0 {
		cfg.Concurrency.BatchWorkers = batchWorkers
	}

	paths, err := worker.ReadPathsFromFile(listPath)
	if err != nil {
		return fmt.Errorf("read list file: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no document paths in %s", listPath)
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", listPath)
	fmt.Fprintf(os.Stderr, "Documents:  %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintln(os.Stderr)

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results := processor.ProcessPaths(ctx, paths)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		if err := p.RenderReport(result.Report, result.Path, verbose); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: render failed: %v\n", result.Path, err)
			continue
		}
		successCount++
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Batch complete: %d ok, %d failed, reports in %s\n",
		successCount, failureCount, cfg.Output.Dir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}
