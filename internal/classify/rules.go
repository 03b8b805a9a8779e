package classify

import (
	"regexp"
	"strconv"

	"pubcheck/internal/model"
)

// Punctuation issue labels. Each rule contributes its label at most once per
// paragraph: the rules report presence, not occurrence counts.
const (
	IssueSpaceBeforeComma       = "space before comma"
	IssueMissingSpaceAfterComma = "missing space after comma"
	IssueSpaceBeforePeriod      = "space before period"
	IssueMissingSpaceAfterColon = "missing space after colon"
)

// punctRule is one paragraph-scoped spacing check.
type punctRule struct {
	label string
	match func(string) bool
}

var (
	spaceBeforeCommaRe  = regexp.MustCompile(`\s,`)
	afterCommaRe        = regexp.MustCompile(`,\S`)
	spaceBeforePeriodRe = regexp.MustCompile(`\s\.`)
	afterColonRe        = regexp.MustCompile(`:\S`)
)

// missingSpaceAfterComma fires on a comma glued to the next character,
// except between digits: decimal and grouping separators are not spacing
// errors.
func missingSpaceAfterComma(text string) bool {
	for _, loc := range afterCommaRe.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isDigitByte(text[loc[0]-1]) && isDigitByte(text[loc[0]+1]) {
			continue
		}
		return true
	}
	return false
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// punctRules run in fixed order; all may fire independently.
var punctRules = []punctRule{
	{IssueSpaceBeforeComma, spaceBeforeCommaRe.MatchString},
	{IssueMissingSpaceAfterComma, missingSpaceAfterComma},
	{IssueSpaceBeforePeriod, spaceBeforePeriodRe.MatchString},
	{IssueMissingSpaceAfterColon, afterColonRe.MatchString},
}

// checkPunctuation returns the categorical spacing labels for a paragraph.
func checkPunctuation(text string) []string {
	var issues []string
	for _, rule := range punctRules {
		if rule.match(text) {
			issues = append(issues, rule.label)
		}
	}
	return issues
}

var (
	percentCommaRe  = regexp.MustCompile(`\b\d+,\d+%`)
	percentDotRe    = regexp.MustCompile(`\b\d+\.\d+%`)
	thousandCommaRe = regexp.MustCompile(`\b\d{1,3},\d{3}\b`)
	thousandDotRe   = regexp.MustCompile(`\b\d{1,3}\.\d{3}\b`)
	digitRunRe      = regexp.MustCompile(`\b\d{4,}\b`)
)

// yearMin and yearMax bound the calendar-year exemption for digit runs.
const (
	yearMin = 1900
	yearMax = 2100
)

// guidelineNote tags a percent match that already uses the house decimal
// separator: collected for the report, but worth a guideline check rather
// than a likely error.
const guidelineNote = " (check guideline)"

// checkPercent collects every percent value written with a decimal
// fraction, whichever separator it uses. Matches using the non-house
// separator are the likely errors and come first; house-style matches
// follow with a guideline note, so the report reader keeps the final say.
func checkPercent(text string, style model.StyleConfig) []string {
	likelyRe, houseRe := percentCommaRe, percentDotRe
	if style.PercentDecimal == "comma" {
		likelyRe, houseRe = percentDotRe, percentCommaRe
	}
	matches := likelyRe.FindAllString(text, -1)
	for _, m := range houseRe.FindAllString(text, -1) {
		matches = append(matches, m+guidelineNote)
	}
	return matches
}

// checkNumbers collects numbers whose grouping violates the house style,
// plus long digit runs missing a thousands separator entirely. Four-digit
// runs are never flagged: they are ambiguous with years, and values inside
// [1900, 2100] are treated as calendar years outright.
func checkNumbers(text string, style model.StyleConfig) []string {
	var matches []string

	// The accepted grouping form is never flagged; only its inverse is.
	if style.Thousands == "comma" {
		matches = thousandDotRe.FindAllString(text, -1)
	} else {
		matches = thousandCommaRe.FindAllString(text, -1)
	}

	for _, run := range digitRunRe.FindAllString(text, -1) {
		if len(run) < 5 {
			continue
		}
		if n, err := strconv.Atoi(run); err == nil && n >= yearMin && n <= yearMax {
			continue
		}
		matches = append(matches, run)
	}
	return matches
}
