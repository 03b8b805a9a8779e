// Package classify is the rule engine: it turns a normalized paragraph into
// a structured Finding. Rules are independent pure functions combined in a
// fixed order; a failing rule contributes nothing for that paragraph but
// never aborts the document.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"pubcheck/internal/lexicon"
	"pubcheck/internal/model"
	"pubcheck/internal/spell"
	"pubcheck/internal/textutil"
)

// numericTokenRe matches tokens that are purely numeric with punctuation;
// these are the number rules' business, not the spelling rules'.
var numericTokenRe = regexp.MustCompile(`^[0-9.,%]+$`)

// foreignTokenRe matches basic Latin-letter tokens of length ≥2, the only
// shape foreign-vocabulary terms take.
var foreignTokenRe = regexp.MustCompile(`\b[A-Za-z]{2,}\b`)

// Classifier classifies paragraphs against a lexicon, a fallback checker,
// and a numeric house style. Build one per run; it is safe for concurrent
// use once constructed.
type Classifier struct {
	lex     *lexicon.Lexicon
	checker spell.Checker
	style   model.StyleConfig
}

// New creates a classifier. The checker is expected to be seeded with the
// domain vocabulary and exempt terms so it never re-flags known-good words.
func New(lex *lexicon.Lexicon, checker spell.Checker, style model.StyleConfig) *Classifier {
	return &Classifier{lex: lex, checker: checker, style: style}
}

// Classify produces the Finding for one normalized paragraph. The four
// sub-rules are independent; only the typo/unknown-word split depends on
// evaluation order.
func (c *Classifier) Classify(index int, text string) model.Finding {
	finding := model.Finding{Index: index}

	c.guard(func() {
		finding.Typos, finding.Unknowns = c.checkSpelling(text)
	})
	c.guard(func() {
		finding.Punct = checkPunctuation(text)
	})
	c.guard(func() {
		finding.Percent = checkPercent(text, c.style)
		finding.Numbers = checkNumbers(text, c.style)
	})
	c.guard(func() {
		finding.Foreign = c.detectForeign(text)
	})

	return finding
}

// guard contains a rule failure on unusual input to "no finding for this
// rule on this paragraph": one bad paragraph must not sink the document.
func (c *Classifier) guard(rule func()) {
	defer func() { _ = recover() }()
	rule()
}

// checkSpelling classifies each token as clean, unknown word, or typo.
// Exempt terms take precedence over every other category.
func (c *Classifier) checkSpelling(text string) ([]model.Typo, []string) {
	var typos []model.Typo
	seenTypo := map[string]struct{}{}
	unknownSet := map[string]struct{}{}

	for _, token := range textutil.Tokenize(text) {
		lw := strings.ToLower(token)
		if c.lex.Exempt.Contains(lw) || c.lex.Domain.Contains(lw) || c.lex.Foreign.Contains(lw) {
			continue
		}
		if numericTokenRe.MatchString(lw) {
			continue
		}
		if c.checker.IsKnown(lw) {
			// Orthographically valid but outside the curated list:
			// a vocabulary-growth candidate, not a typo.
			unknownSet[lw] = struct{}{}
			continue
		}
		if _, dup := seenTypo[token]; dup {
			continue
		}
		seenTypo[token] = struct{}{}
		typos = append(typos, model.Typo{Word: token, Suggest: c.checker.Suggest(lw)})
	}

	unknowns := make([]string, 0, len(unknownSet))
	for w := range unknownSet {
		unknowns = append(unknowns, w)
	}
	sort.Strings(unknowns)
	return typos, unknowns
}

// detectForeign collects foreign-vocabulary terms that should be
// typographically emphasized. Exempt terms are never flagged.
func (c *Classifier) detectForeign(text string) []string {
	set := map[string]struct{}{}
	for _, token := range foreignTokenRe.FindAllString(text, -1) {
		lw := strings.ToLower(token)
		if c.lex.Foreign.Contains(lw) && !c.lex.Exempt.Contains(lw) {
			set[token] = struct{}{}
		}
	}
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
