// Package lexicon loads and holds the static word sets the classifier
// consults: domain vocabulary, foreign vocabulary, and exempt terms.
// Sets are immutable once loaded and safe for concurrent readers.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"pubcheck/internal/model"
)

// Set is an immutable set of lowercased words.
type Set map[string]struct{}

// Contains is an exact, case-insensitive membership test.
// No stemming, no fuzzy matching.
func (s Set) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Len returns the number of words in the set.
func (s Set) Len() int { return len(s) }

// Words returns the members of the set in unspecified order.
func (s Set) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	return words
}

// Lexicon holds the three word-set categories. The precedence rule
// (exempt > domain/foreign > unknown) is enforced by the classifier,
// not here.
type Lexicon struct {
	Domain  Set // Recognized primary-language terms
	Foreign Set // Recognized secondary-language terms, flagged for emphasis
	Exempt  Set // Terms excluded from all flagging
}

// Load reads a line-oriented word list: trim whitespace, drop blank lines,
// lowercase. A missing file yields an empty set and no error; the checker
// must run with partial vocabularies.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("open wordlist %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	set := Set{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist %s: %w", path, err)
	}
	return set, nil
}

// Loader loads lexicons with process-lifetime memoization, so batch runs
// read each wordlist file once. Lexicons are treated as immutable for the
// life of the process.
type Loader struct {
	cache *gocache.Cache
}

// NewLoader creates a loader with its own memoization cache.
func NewLoader() *Loader {
	return &Loader{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// loadCached loads one wordlist through the cache.
func (l *Loader) loadCached(path string) (Set, error) {
	if val, found := l.cache.Get(path); found {
		return val.(Set), nil
	}
	set, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.cache.Set(path, set, gocache.NoExpiration)
	return set, nil
}

// LoadLexicon loads all three categories from the configured paths.
// Missing files degrade to empty sets; the returned warnings name them so
// the caller can report reduced accuracy.
func (l *Loader) LoadLexicon(cfg model.LexiconConfig) (*Lexicon, []string, error) {
	var warnings []string

	paths := []struct {
		name string
		path string
		dst  *Set
	}{
		{"domain vocabulary", cfg.DomainPath, nil},
		{"foreign vocabulary", cfg.ForeignPath, nil},
		{"exempt terms", cfg.ExemptPath, nil},
	}

	lex := &Lexicon{}
	paths[0].dst = &lex.Domain
	paths[1].dst = &lex.Foreign
	paths[2].dst = &lex.Exempt

	for _, p := range paths {
		set, err := l.loadCached(p.path)
		if err != nil {
			return nil, nil, err
		}
		if set.Len() == 0 {
			if _, statErr := os.Stat(p.path); os.IsNotExist(statErr) {
				warnings = append(warnings, fmt.Sprintf("%s file not found: %s (category disabled, reduced accuracy)", p.name, p.path))
			}
		}
		*p.dst = set
	}

	return lex, warnings, nil
}
