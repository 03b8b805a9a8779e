package aggregate

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pubcheck/internal/model"
)

// typoLogHeader is the fixed column order of the typo log.
var typoLogHeader = []string{"doc", "paragraph_index", "word", "suggest"}

// TypoLog is the append-only typo audit trail. Rows grow without bound;
// retention is an administrative concern outside this package.
type TypoLog struct {
	path string
}

// NewTypoLog creates a typo-log handle for the given CSV path.
func NewTypoLog(path string) *TypoLog {
	return &TypoLog{path: path}
}

// Append writes rows to the end of the log under the same lock-file
// discipline as the ledger. All rows of a run go out in one buffered flush,
// so a concurrent reader never observes an interleaved write.
func (t *TypoLog) Append(ctx context.Context, rows []model.TypoRow) error {
	if len(rows) == 0 {
		return nil
	}

	unlock, err := acquireLock(ctx, t.path+".lock")
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	_, statErr := os.Stat(t.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open typo log: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(typoLogHeader); err != nil {
			return fmt.Errorf("write typo log header: %w", err)
		}
	}
	for _, row := range rows {
		rec := []string{row.Doc, strconv.Itoa(row.ParagraphIndex), row.Word, row.Suggest}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write typo log row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush typo log: %w", err)
	}
	return nil
}

// Load reads all typo-log rows, oldest first. A missing file is empty.
func (t *TypoLog) Load() ([]model.TypoRow, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open typo log: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read typo log: %w", err)
	}

	var rows []model.TypoRow
	for i, rec := range records {
		if i == 0 || len(rec) < 4 {
			continue
		}
		idx, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		rows = append(rows, model.TypoRow{Doc: rec[0], ParagraphIndex: idx, Word: rec[2], Suggest: rec[3]})
	}
	return rows, nil
}
