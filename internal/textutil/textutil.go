// Package textutil provides the normalization and tokenization primitives
// shared by the classifier and the annotation engine. All functions are pure
// and deterministic: the annotation engine relies on re-tokenizing the same
// text producing the same segments.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// tokenRe matches a maximal run of word characters: Unicode letters, digits,
// apostrophe, hyphen. Full letter semantics so diacritics stay in one token.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}'-]+`)

// Normalize returns the canonical whitespace form of s: NFC-composed,
// zero-width and no-break spaces replaced by ordinary spaces, whitespace runs
// collapsed to a single space, ends trimmed. Idempotent.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\u200b", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize returns the word-like tokens of s in order, duplicates retained.
// Classification dedupes downstream; the tokenizer never does.
func Tokenize(s string) []string {
	return tokenRe.FindAllString(s, -1)
}

// SplitSegments splits s into alternating word and whitespace segments.
// Joining the segments reproduces s exactly, which is what lets the
// annotation engine guarantee it never alters the underlying text.
func SplitSegments(s string) []string {
	if s == "" {
		return nil
	}
	var segs []string
	var b strings.Builder
	prevSpace := false
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != prevSpace {
			segs = append(segs, b.String())
			b.Reset()
		}
		b.WriteRune(r)
		prevSpace = isSpace
	}
	segs = append(segs, b.String())
	return segs
}

// CleanToken strips a segment down to its matchable core: word characters,
// percent sign, dot and comma survive; everything else is removed. The
// result is lowercased.
func CleanToken(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '%' || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	return strings.ToLower(cleaned)
}

// Preview truncates s to at most n runes.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
