// Package tokenizer implements the single canonical tokenizer shared by the
// inverted index and query parsing. It is lossy on purpose: the output feeds
// scoring statistics, never display.
package tokenizer

import (
	"strings"
	"unicode"
)

// MinTermLen is the minimum term length (in runes) kept by the tokenizer.
const MinTermLen = 2

// stopWords is the fixed English stopword set filtered before emission.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "be": {},
	"this": {}, "that": {}, "it": {}, "its": {}, "their": {}, "we": {},
	"you": {}, "i": {},
}

// Tokenize splits text into an ordered sequence of lowercase terms. A term
// is a maximal run of Unicode letters or ASCII digits. ASCII letters fold to
// lowercase; non-ASCII letters pass through Unicode lowercasing unchanged in
// width. Terms shorter than MinTermLen runes and stopwords are dropped.
func Tokenize(text string) []string {
	var terms []string
	var current strings.Builder
	runeCount := 0

	flush := func() {
		if runeCount >= MinTermLen {
			term := current.String()
			if _, stop := stopWords[term]; !stop {
				terms = append(terms, term)
			}
		}
		current.Reset()
		runeCount = 0
	}

	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			current.WriteRune(r)
			runeCount++
		case r >= 'A' && r <= 'Z':
			current.WriteRune(r + ('a' - 'A'))
			runeCount++
		case r >= 'a' && r <= 'z':
			current.WriteRune(r)
			runeCount++
		case r > unicode.MaxASCII && unicode.IsLetter(r):
			current.WriteRune(unicode.ToLower(r))
			runeCount++
		default:
			flush()
		}
	}
	flush()

	if terms == nil {
		return []string{}
	}
	return terms
}

// TokenizeUnique returns the de-duplicated terms of text in first-seen
// order. Used for query terms, where each term scores once.
func TokenizeUnique(text string) []string {
	terms := Tokenize(text)
	seen := make(map[string]struct{}, len(terms))
	unique := terms[:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}

// CountTerms returns the number of terms Tokenize would emit for text,
// without materializing the slice. This is the token count recorded in
// chunk_lengths.
func CountTerms(text string) int {
	n := 0
	for range TokenizeIter(text) {
		n++
	}
	return n
}

// TokenizeIter yields terms one at a time. It exists so index construction
// can stream term frequencies without building intermediate slices for
// every chunk.
func TokenizeIter(text string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		var current strings.Builder
		runeCount := 0

		emit := func() bool {
			defer func() {
				current.Reset()
				runeCount = 0
			}()
			if runeCount < MinTermLen {
				return true
			}
			term := current.String()
			if _, stop := stopWords[term]; stop {
				return true
			}
			return yield(term)
		}

		for _, r := range text {
			switch {
			case r >= '0' && r <= '9':
				current.WriteRune(r)
				runeCount++
			case r >= 'A' && r <= 'Z':
				current.WriteRune(r + ('a' - 'A'))
				runeCount++
			case r >= 'a' && r <= 'z':
				current.WriteRune(r)
				runeCount++
			case r > unicode.MaxASCII && unicode.IsLetter(r):
				current.WriteRune(unicode.ToLower(r))
				runeCount++
			default:
				if !emit() {
					return
				}
			}
		}
		emit()
	}
}

// IsStopWord reports whether term is in the fixed stopword set.
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}
