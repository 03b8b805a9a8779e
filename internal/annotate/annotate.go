// Package annotate maps findings back onto original paragraph text. The
// structural invariant: stripping all markers from an annotated paragraph
// yields the original text character for character, whitespace included.
package annotate

import (
	"strings"

	"pubcheck/internal/model"
	"pubcheck/internal/textutil"
)

// Segment is one word or whitespace span of a paragraph with its markers.
// Markers are orthogonal: a foreign typo carries both.
type Segment struct {
	Text       string
	Whitespace bool
	Error      bool // highlight: typo or numeric/percent issue
	Foreign    bool // emphasize: foreign term
}

// Annotate splits original into segments and assigns markers from the
// finding. Whitespace segments pass through untouched; no segment is ever
// reordered, merged, split, or dropped.
func Annotate(original string, f model.Finding) []Segment {
	surfaces := map[string]struct{}{}
	lowered := map[string]struct{}{}
	for _, t := range f.Typos {
		surfaces[t.Word] = struct{}{}
		lowered[strings.ToLower(t.Word)] = struct{}{}
	}
	for _, m := range f.Percent {
		// House-style matches carry a trailing guideline note; only the
		// match itself appears in the text.
		if i := strings.IndexByte(m, ' '); i > 0 {
			m = m[:i]
		}
		surfaces[m] = struct{}{}
		lowered[strings.ToLower(m)] = struct{}{}
	}
	for _, m := range f.Numbers {
		surfaces[m] = struct{}{}
		lowered[m] = struct{}{}
	}
	foreign := map[string]struct{}{}
	for _, t := range f.Foreign {
		foreign[strings.ToLower(t)] = struct{}{}
	}

	var segs []Segment
	for _, raw := range textutil.SplitSegments(original) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			segs = append(segs, Segment{Text: raw, Whitespace: true})
			continue
		}
		clean := textutil.CleanToken(raw)

		seg := Segment{Text: raw}
		if _, ok := surfaces[trimmed]; ok {
			seg.Error = true
		} else if _, ok := lowered[clean]; ok {
			seg.Error = true
		}
		if _, ok := foreign[clean]; ok {
			seg.Foreign = true
		}
		segs = append(segs, seg)
	}
	return segs
}

// Strip reassembles the unmarked text of segments. For any paragraph P,
// Strip(Annotate(P, f)) == P.
func Strip(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
