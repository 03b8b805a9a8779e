// Package spell implements the statistical fallback checker behind the
// classifier: a word-form recognizer plus a best-effort correction
// suggester. The checker is a substitutable capability: anything honoring
// the Checker interface (a hunspell binding, a SymSpell index) can replace
// the built-in implementation.
package spell

import (
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pubcheck/internal/lexicon"
)

// Checker recognizes word forms and proposes corrections.
type Checker interface {
	// IsKnown reports whether word is a recognized word form.
	IsKnown(word string) bool

	// Suggest returns the best correction candidate for word, or ""
	// when no candidate is found. An empty suggestion is not an error.
	Suggest(word string) string
}

// LexiconChecker validates words against a seeded vocabulary in layers:
// exact membership first, then affix-stripped stem membership, so inflected
// forms of curated words are recognized without being in the list
// themselves. Suggestions come from a bounded edit-distance search over the
// seeded vocabulary.
type LexiconChecker struct {
	vocab       lexicon.Set
	words       []string // sorted vocabulary for deterministic suggestion order
	maxDistance int
	suggestions *gocache.Cache
}

// NewLexiconChecker seeds a checker with the given sets (typically domain
// vocabulary plus exempt terms, so known-good words are never re-flagged).
func NewLexiconChecker(maxDistance int, suggestionTTL time.Duration, seeds ...lexicon.Set) *LexiconChecker {
	vocab := lexicon.Set{}
	for _, s := range seeds {
		for w := range s {
			vocab[w] = struct{}{}
		}
	}
	words := vocab.Words()
	sort.Strings(words)

	if maxDistance <= 0 {
		maxDistance = 2
	}
	if suggestionTTL <= 0 {
		suggestionTTL = 30 * time.Minute
	}

	return &LexiconChecker{
		vocab:       vocab,
		words:       words,
		maxDistance: maxDistance,
		suggestions: gocache.New(suggestionTTL, 2*suggestionTTL),
	}
}

// IsKnown reports whether word is an exact vocabulary member or reduces to
// one after affix stripping.
func (c *LexiconChecker) IsKnown(word string) bool {
	lw := strings.ToLower(word)
	if c.vocab.Contains(lw) {
		return true
	}
	for _, stem := range stemCandidates(lw) {
		if c.vocab.Contains(stem) {
			return true
		}
	}
	return false
}

// Suggest returns the closest vocabulary word within the edit-distance
// bound. Ties break toward the smaller distance, then lexicographically,
// so repeated runs always propose the same correction.
func (c *LexiconChecker) Suggest(word string) string {
	lw := strings.ToLower(word)
	if c.vocab.Contains(lw) {
		return lw
	}
	if cached, found := c.suggestions.Get(lw); found {
		return cached.(string)
	}

	best := ""
	bestDist := c.maxDistance + 1
	for _, cand := range c.words {
		d := DistanceAtMost(lw, cand, c.maxDistance)
		if d < bestDist {
			bestDist = d
			best = cand
			if d == 1 {
				break
			}
		}
	}

	c.suggestions.Set(lw, best, gocache.DefaultExpiration)
	return best
}

// minStemLen guards against stripping a short token down to noise.
const minStemLen = 3

// prefixes that can be stripped from an inflected form, paired with the
// rune restored after sound assimilation (meng+ambil, men+(t)ulis, …).
var prefixRewrites = []struct {
	prefix  string
	restore []string
}{
	{"meny", []string{"s"}},
	{"meng", []string{"", "k"}},
	{"mem", []string{"", "p"}},
	{"men", []string{"", "t"}},
	{"me", []string{""}},
	{"peny", []string{"s"}},
	{"peng", []string{"", "k"}},
	{"pem", []string{"", "p"}},
	{"pen", []string{"", "t"}},
	{"per", []string{""}},
	{"pe", []string{""}},
	{"ber", []string{""}},
	{"ter", []string{""}},
	{"di", []string{""}},
	{"ke", []string{""}},
	{"se", []string{""}},
}

var particleSuffixes = []string{"lah", "kah", "nya"}
var derivationalSuffixes = []string{"kan", "an", "i"}

// stemCandidates generates plausible stems of an Indonesian inflected form
// by stripping particles, derivational suffixes, and one prefix. It
// over-generates; callers filter by vocabulary membership.
func stemCandidates(word string) []string {
	forms := []string{word}

	// Particle and possessive suffixes come off first.
	for _, suf := range particleSuffixes {
		if base, ok := strings.CutSuffix(word, suf); ok && len([]rune(base)) >= minStemLen {
			forms = append(forms, base)
		}
	}

	// Derivational suffixes on every form so far.
	for _, f := range forms {
		for _, suf := range derivationalSuffixes {
			if base, ok := strings.CutSuffix(f, suf); ok && len([]rune(base)) >= minStemLen {
				forms = append(forms, base)
			}
		}
	}

	// One prefix rewrite on every suffix-stripped form.
	var out []string
	seen := map[string]struct{}{word: {}}
	for _, f := range forms {
		if f != word {
			if _, dup := seen[f]; !dup {
				seen[f] = struct{}{}
				out = append(out, f)
			}
		}
		for _, pr := range prefixRewrites {
			base, ok := strings.CutPrefix(f, pr.prefix)
			if !ok {
				continue
			}
			for _, restore := range pr.restore {
				stem := restore + base
				if len([]rune(stem)) < minStemLen {
					continue
				}
				if _, dup := seen[stem]; dup {
					continue
				}
				seen[stem] = struct{}{}
				out = append(out, stem)
			}
		}
	}
	return out
}
