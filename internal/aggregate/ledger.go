package aggregate

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"pubcheck/internal/model"
)

// ledgerHeader is the fixed column order of the unknown-word ledger.
var ledgerHeader = []string{"word", "frequency", "first_seen_doc", "context"}

// Ledger is the persistent unknown-word frequency table. Every merge is a
// read-merge-write of the whole file under an exclusive lock file, so
// concurrent runs serialize and an aborted run never leaves a torn file.
type Ledger struct {
	path string
}

// NewLedger creates a ledger handle for the given CSV path.
// The file is created on first merge.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Load reads the current ledger rows. A missing file is an empty ledger.
func (l *Ledger) Load() (map[string]model.LedgerEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]model.LedgerEntry{}, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	entries := map[string]model.LedgerEntry{}
	for i, rec := range records {
		if i == 0 || len(rec) < 4 {
			continue // header or malformed row
		}
		freq, err := strconv.Atoi(rec[1])
		if err != nil || freq < 1 {
			freq = 1
		}
		entries[rec[0]] = model.LedgerEntry{
			Word:         rec[0],
			Frequency:    freq,
			FirstSeenDoc: rec[2],
			Context:      rec[3],
		}
	}
	return entries, nil
}

// Merge folds deltas into the ledger: an existing word gains the incoming
// frequency and keeps its stored first_seen_doc and context (first write
// wins); a new word is inserted as-is. The merged table is written to a
// temp file and renamed into place.
func (l *Ledger) Merge(ctx context.Context, deltas []model.LedgerEntry) error {
	if len(deltas) == 0 {
		return nil
	}

	unlock, err := acquireLock(ctx, l.path+".lock")
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := l.Load()
	if err != nil {
		return err
	}

	for _, d := range deltas {
		if existing, ok := entries[d.Word]; ok {
			existing.Frequency += d.Frequency
			entries[d.Word] = existing
			continue
		}
		entries[d.Word] = d
	}

	words := make([]string, 0, len(entries))
	for w := range entries {
		words = append(words, w)
	}
	sort.Strings(words)

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, ledgerHeader)
	for _, w := range words {
		e := entries[w]
		rows = append(rows, []string{e.Word, strconv.Itoa(e.Frequency), e.FirstSeenDoc, e.Context})
	}
	return writeCSVAtomic(l.path, rows)
}

// writeCSVAtomic writes rows to a temp file in the target directory and
// renames it over path, so readers only ever see a complete file.
func writeCSVAtomic(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.WriteAll(rows)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, writeErr)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// acquireLock takes an exclusive lock file, retrying until the context
// expires. The returned func releases the lock.
func acquireLock(ctx context.Context, lockPath string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", lockPath, ctx.Err())
		case <-time.After(50 * time.Millisecond):
		}
	}
}
