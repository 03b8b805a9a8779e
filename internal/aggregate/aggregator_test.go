package aggregate

import (
	"strings"
	"testing"

	"pubcheck/internal/model"
)

func para(index int, text string) model.Paragraph {
	return model.Paragraph{Index: index, Raw: text, Normalized: text}
}

func TestAggregate_CleanParagraphsContributeNothing(t *testing.T) {
	agg := New(200)
	paragraphs := []model.Paragraph{para(0, "kalimat bersih"), para(1, "juga bersih")}
	findings := []model.Finding{{Index: 0}, {Index: 1}}

	rows, deltas, typoRows := agg.Aggregate("doc.docx", paragraphs, findings)
	if len(rows) != 0 || len(deltas) != 0 || len(typoRows) != 0 {
		t.Errorf("Expected empty outputs, got rows=%d deltas=%d typos=%d", len(rows), len(deltas), len(typoRows))
	}
}

func TestAggregate_PreAggregatesUnknowns(t *testing.T) {
	agg := New(200)
	paragraphs := []model.Paragraph{
		para(0, "konteks pertama"),
		para(1, "konteks kedua"),
	}
	findings := []model.Finding{
		{Index: 0, Unknowns: []string{"sinergi", "validasi"}},
		{Index: 1, Unknowns: []string{"sinergi"}},
	}

	_, deltas, _ := agg.Aggregate("doc.docx", paragraphs, findings)
	if len(deltas) != 2 {
		t.Fatalf("Expected 2 deltas, got %d", len(deltas))
	}

	byWord := map[string]model.LedgerEntry{}
	for _, d := range deltas {
		byWord[d.Word] = d
	}
	if byWord["sinergi"].Frequency != 2 {
		t.Errorf("Expected frequency 2 for 'sinergi', got %d", byWord["sinergi"].Frequency)
	}
	if byWord["sinergi"].Context != "konteks pertama" {
		t.Errorf("Expected first paragraph's context kept, got %q", byWord["sinergi"].Context)
	}
	if byWord["sinergi"].FirstSeenDoc != "doc.docx" {
		t.Errorf("Expected first_seen_doc set, got %q", byWord["sinergi"].FirstSeenDoc)
	}
}

func TestAggregate_TypoRowsPerOccurrence(t *testing.T) {
	agg := New(200)
	paragraphs := []model.Paragraph{para(0, "satu"), para(1, "dua")}
	findings := []model.Finding{
		{Index: 0, Typos: []model.Typo{{Word: "ekonomx", Suggest: "ekonomi"}}},
		{Index: 1, Typos: []model.Typo{{Word: "ekonomx", Suggest: "ekonomi"}}},
	}

	_, _, typoRows := agg.Aggregate("doc.docx", paragraphs, findings)
	if len(typoRows) != 2 {
		t.Fatalf("Expected one row per occurrence across paragraphs, got %d", len(typoRows))
	}
	if typoRows[0].ParagraphIndex != 0 || typoRows[1].ParagraphIndex != 1 {
		t.Errorf("Expected paragraph indices preserved, got %+v", typoRows)
	}
}

func TestAggregate_RowCellsSemicolonJoined(t *testing.T) {
	agg := New(200)
	paragraphs := []model.Paragraph{para(0, "teks dengan masalah")}
	findings := []model.Finding{{
		Index:    0,
		Typos:    []model.Typo{{Word: "eknomoi", Suggest: "ekonomi"}, {Word: "dta", Suggest: "data"}},
		Percent:  []string{"12,5%"},
		Numbers:  []string{"15000"},
		Punct:    []string{"space before comma"},
		Foreign:  []string{"framework"},
		Unknowns: []string{"sinergi"},
	}}

	rows, _, _ := agg.Aggregate("doc.docx", paragraphs, findings)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Typos != "eknomoi; dta" {
		t.Errorf("Expected typo cell 'eknomoi; dta', got %q", row.Typos)
	}
	if row.English != "framework" {
		t.Errorf("Expected english cell 'framework', got %q", row.English)
	}
	if row.Preview != "teks dengan masalah" {
		t.Errorf("Expected preview, got %q", row.Preview)
	}
}

func TestAggregate_PreviewTruncated(t *testing.T) {
	agg := New(10)
	long := strings.Repeat("panjang ", 10)
	paragraphs := []model.Paragraph{para(0, long)}
	findings := []model.Finding{{Index: 0, Unknowns: []string{"kata"}}}

	rows, deltas, _ := agg.Aggregate("doc.docx", paragraphs, findings)
	if len([]rune(rows[0].Preview)) != 10 {
		t.Errorf("Expected 10-rune preview, got %d runes", len([]rune(rows[0].Preview)))
	}
	if len([]rune(deltas[0].Context)) != 10 {
		t.Errorf("Expected 10-rune context, got %d runes", len([]rune(deltas[0].Context)))
	}
}
