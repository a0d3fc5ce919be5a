// Package relevance scores candidate documents against a normalized query.
//
// The score is a hand-tuned ranking signal, not a probability. The constants
// here (400/200 whole-query, 100 title, 10-per-occurrence capped at 100,
// 50 all-in-title, 20 proximity, 20 positional) are load-bearing tuning
// values; changing them changes result ordering on real corpora.
package relevance

import (
	"strings"
	"unicode"

	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/internal/morphology"
)

// Rejected is the sentinel score meaning "exclude this document from
// results". It is the only negative value Score returns.
const Rejected = -1

// Score rates doc against a query. queryWords is the tokenized,
// order-preserved query (terms of two runes or more); queryStems is
// index-aligned with queryWords. A missing or empty stem at an index means
// "no stem available" for that word.
//
// A document matching the whole query verbatim scores on the title/body
// path alone. Otherwise every query word must be found, verbatim in title
// or body or via its stem as a word prefix in the body, or the document
// is rejected.
func Score(doc *models.Document, queryText string, queryWords, queryStems []string) int {
	title := morphology.Normalize(doc.Title)
	body := morphology.Normalize(doc.Body)
	q := strings.TrimSpace(morphology.Normalize(queryText))

	score := 0
	foundInTitle := false
	foundInBody := false

	if q != "" && strings.Contains(title, q) {
		score += 400
		foundInTitle = true
	} else if q != "" && strings.Contains(body, q) {
		score += 200
		foundInBody = true
	}

	if !foundInTitle && !foundInBody {
		foundWords := 0
		titleWords := 0
		for i, word := range queryWords {
			inTitle := strings.Contains(title, word)
			count := strings.Count(body, word)
			if count == 0 && i < len(queryStems) && queryStems[i] != "" {
				count = countStemPrefix(body, queryStems[i])
			}
			if inTitle || count > 0 {
				foundWords++
			}
			if inTitle {
				score += 100
				titleWords++
			}
			if count > 0 {
				credit := count * 10
				if credit > 100 {
					credit = 100
				}
				score += credit
			}
		}

		// Partial coverage is not an acceptable match.
		if foundWords < len(queryWords) {
			return Rejected
		}

		if len(queryWords) > 1 && titleWords == len(queryWords) {
			score += 50
		}
		if proximityMatch(body, queryWords) {
			score += 20
		}
		if len(queryWords) > 0 {
			if bonus := positionBonus(title+" "+body, queryWords[0]); bonus > 0 {
				score += bonus
			}
		}
	}

	if !foundInTitle && !foundInBody && score <= 0 {
		return Rejected
	}
	return score
}

// countStemPrefix counts body words that start with stem: the stem followed
// by zero or more letters, word-boundary anchored. This recovers inflected
// forms that the verbatim count misses.
func countStemPrefix(body, stem string) int {
	if stem == "" {
		return 0
	}
	count := 0
	for _, word := range splitWords(body) {
		if strings.HasPrefix(word, stem) {
			count++
		}
	}
	return count
}

// splitWords splits text into letter/digit runs without a length filter.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// proximityMatch reports whether all query words occur in the body in query
// order, each starting within 20 runes after the end of the previous one.
// Every occurrence of the first word is tried as a chain start.
func proximityMatch(body string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	bodyRunes := []rune(body)
	first := []rune(words[0])

	for start := indexRunes(bodyRunes, first, 0); start >= 0; start = indexRunes(bodyRunes, first, start+1) {
		end := start + len(first)
		ok := true
		for _, w := range words[1:] {
			wr := []rune(w)
			pos := indexRunes(bodyRunes, wr, end)
			if pos < 0 || pos-end > 20 {
				ok = false
				break
			}
			end = pos + len(wr)
		}
		if ok {
			return true
		}
	}
	return false
}

// positionBonus rewards an early first match: max(0, 20 - position/100),
// decaying one point per hundred runes into the title+body concatenation.
func positionBonus(text, word string) int {
	pos := indexRunes([]rune(text), []rune(word), 0)
	if pos < 0 {
		return 0
	}
	bonus := 20 - pos/100
	if bonus < 0 {
		return 0
	}
	return bonus
}

// indexRunes returns the rune index of the first occurrence of needle in
// haystack at or after from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
