// Package aggregate turns per-paragraph findings into whole-document report
// rows, unknown-word ledger deltas, and typo-log rows, and owns the two
// persistent CSV stores.
package aggregate

import (
	"strings"

	"pubcheck/internal/model"
	"pubcheck/internal/textutil"
)

// Aggregator collects findings for one document.
type Aggregator struct {
	previewRunes int
}

// New creates an aggregator. previewRunes bounds paragraph previews and
// ledger context strings.
func New(previewRunes int) *Aggregator {
	if previewRunes <= 0 {
		previewRunes = 200
	}
	return &Aggregator{previewRunes: previewRunes}
}

// Aggregate walks findings in paragraph order and produces the three
// outputs of a run. Clean paragraphs contribute nothing. Unknown words are
// pre-aggregated within the run (frequencies summed, first paragraph's
// context kept) so the ledger merge is a single delta per word.
func (a *Aggregator) Aggregate(docName string, paragraphs []model.Paragraph, findings []model.Finding) ([]model.ReportRow, []model.LedgerEntry, []model.TypoRow) {
	var rows []model.ReportRow
	var typoRows []model.TypoRow

	deltaByWord := map[string]*model.LedgerEntry{}
	var deltaOrder []string

	for i, f := range findings {
		preview := textutil.Preview(paragraphs[i].Normalized, a.previewRunes)

		for _, w := range f.Unknowns {
			if entry, ok := deltaByWord[w]; ok {
				entry.Frequency++
				continue
			}
			deltaByWord[w] = &model.LedgerEntry{
				Word:         w,
				Frequency:    1,
				FirstSeenDoc: docName,
				Context:      preview,
			}
			deltaOrder = append(deltaOrder, w)
		}

		// Every typo occurrence gets its own audit row, undeduplicated.
		for _, t := range f.Typos {
			typoRows = append(typoRows, model.TypoRow{
				Doc:            docName,
				ParagraphIndex: f.Index,
				Word:           t.Word,
				Suggest:        t.Suggest,
			})
		}

		if f.Empty() {
			continue
		}
		rows = append(rows, model.ReportRow{
			ParagraphIndex: f.Index,
			Preview:        preview,
			Typos:          strings.Join(f.TypoWords(), "; "),
			Unknowns:       strings.Join(f.Unknowns, "; "),
			Percent:        strings.Join(f.Percent, "; "),
			Numbers:        strings.Join(f.Numbers, "; "),
			Punct:          strings.Join(f.Punct, "; "),
			English:        strings.Join(f.Foreign, "; "),
		})
	}

	deltas := make([]model.LedgerEntry, 0, len(deltaOrder))
	for _, w := range deltaOrder {
		deltas = append(deltas, *deltaByWord[w])
	}
	return rows, deltas, typoRows
}
