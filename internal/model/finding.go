package model

// Paragraph is one unit of extracted text. Paragraphs are produced once by
// the extraction layer and never mutated afterwards.
type Paragraph struct {
	Index      int    `json:"index"`      // Ordinal position in the document (zero-based)
	Raw        string `json:"raw"`        // Text exactly as extracted
	Normalized string `json:"normalized"` // Whitespace-collapsed form used for classification
}

// Typo is a token recognized by none of the lexicons or the fallback checker.
type Typo struct {
	Word    string `json:"word"`              // Surface form as it appeared
	Suggest string `json:"suggest,omitempty"` // Best-effort correction, empty if none found
}

// Finding is the classification result for one paragraph. A Finding with all
// collections empty means the paragraph is clean and is excluded from reports.
type Finding struct {
	Index    int      `json:"index"`              // Paragraph index (zero-based)
	Typos    []Typo   `json:"typos,omitempty"`    // Likely misspellings, deduped by surface form
	Unknowns []string `json:"unknowns,omitempty"` // Vocabulary-growth candidates, lowercased and sorted
	Foreign  []string `json:"foreign,omitempty"`  // Foreign-vocabulary terms needing emphasis
	Percent  []string `json:"pct,omitempty"`      // Percent-notation matches; house-style ones carry a guideline note
	Numbers  []string `json:"numbers,omitempty"`  // Raw number matches violating separator rules
	Punct    []string `json:"punct,omitempty"`    // Categorical punctuation-spacing labels
}

// Empty reports whether the finding carries no issues at all.
func (f Finding) Empty() bool {
	return len(f.Typos) == 0 && len(f.Unknowns) == 0 && len(f.Foreign) == 0 &&
		len(f.Percent) == 0 && len(f.Numbers) == 0 && len(f.Punct) == 0
}

// TypoWords returns the surface forms of all typos in the finding.
func (f Finding) TypoWords() []string {
	words := make([]string, 0, len(f.Typos))
	for _, t := range f.Typos {
		words = append(words, t.Word)
	}
	return words
}
