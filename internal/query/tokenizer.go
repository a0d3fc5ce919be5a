// Package query normalizes raw query text: tokenization, stop-word
// stripping, keyboard-layout correction, and stem-based rewriting.
package query

import (
	"strings"
	"unicode"

	"github.com/poisklab/poisk/internal/morphology"
)

// Tokenize lowercases text (folding ё to е) and splits it on runs of
// non-letter, non-digit runes. Tokens shorter than two runes are dropped.
// Order is preserved and duplicates are kept; callers dedup where needed.
func Tokenize(text string) []string {
	norm := morphology.Normalize(text)

	var terms []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			terms = append(terms, string(current))
		}
		current = current[:0]
	}
	for _, r := range norm {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, r)
		} else {
			flush()
		}
	}
	flush()
	return terms
}

// StemJoin rewrites text as its deduplicated stem sequence: tokenize, stem
// each token, keep the first occurrence of each stem, join with spaces.
// Used to build the fallback stemmed query for approximate search.
func StemJoin(text string) string {
	var stems []string
	seen := make(map[string]bool)
	for _, term := range Tokenize(text) {
		stem := morphology.Stem(term)
		if stem == "" || seen[stem] {
			continue
		}
		seen[stem] = true
		stems = append(stems, stem)
	}
	return strings.Join(stems, " ")
}

// Stems returns the per-word stem for each term, index-aligned with terms.
func Stems(terms []string) []string {
	stems := make([]string, len(terms))
	for i, t := range terms {
		stems[i] = morphology.Stem(t)
	}
	return stems
}
