// Package highlight wraps matched query terms in markup and extracts
// highlighted body snippets for display under search results.
//
// Matching is morphological: a term highlights any surface form sharing its
// stem, and terms longer than four runes also match whole words within edit
// distance two. Raw text is HTML-escaped before any markup is added, and a
// position wrapped by one pass is never wrapped again.
package highlight

import (
	"html"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poisklab/poisk/internal/morphology"
)

// TermClass labels a term's provenance relative to a two-query comparison:
// the active (possibly corrected) query, or an earlier superseded one. It
// only selects the highlight style. A term present in both collapses to
// TermCurrent at extraction time.
type TermClass int

const (
	// TermCurrent marks terms of the active query.
	TermCurrent TermClass = iota
	// TermPrevious marks terms of a superseded query.
	TermPrevious
)

func (c TermClass) cssClass() string {
	if c == TermPrevious {
		return "hl-prev"
	}
	return "hl"
}

// Term is a query term carrying its highlight class.
type Term struct {
	Text  string
	Class TermClass
}

// Terms builds a Term slice with TermCurrent for every word.
func Terms(words []string) []Term {
	terms := make([]Term, len(words))
	for i, w := range words {
		terms[i] = Term{Text: w, Class: TermCurrent}
	}
	return terms
}

// span is a claimed highlight interval over the escaped rune sequence.
type span struct {
	start, end int
	class      string
}

// Highlight HTML-escapes text and wraps every term match in a <mark> element
// carrying the term's style class. Longer terms are applied first so a short
// term cannot steal part of a longer match; claimed positions are excluded
// from all later passes, so markup never nests.
func Highlight(text string, terms []Term) string {
	escaped := html.EscapeString(text)
	runes := []rune(escaped)

	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = foldRune(r)
	}

	sorted := make([]Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Text) > utf8.RuneCountInString(sorted[j].Text)
	})

	taken := make([]bool, len(runes))
	var spans []span
	free := func(start, end int) bool {
		for i := start; i < end; i++ {
			if taken[i] {
				return false
			}
		}
		return true
	}
	claim := func(start, end int, class string) {
		spans = append(spans, span{start: start, end: end, class: class})
		for i := start; i < end; i++ {
			taken[i] = true
		}
	}

	for _, term := range sorted {
		lowerTerm := morphology.Normalize(term.Text)
		if lowerTerm == "" {
			continue
		}
		class := term.Class.cssClass()

		// Stem pass: the stem at a word start, extended over any trailing
		// letters and combining marks, covers every inflected form.
		stem := []rune(morphology.Stem(lowerTerm))
		if len(stem) > 0 {
			for i := 0; i+len(stem) <= len(folded); i++ {
				if i > 0 && isWordRune(folded[i-1]) {
					continue
				}
				if !runesEqual(folded[i:i+len(stem)], stem) {
					continue
				}
				end := i + len(stem)
				for end < len(runes) && extendsWord(runes[end]) {
					end++
				}
				if free(i, end) {
					claim(i, end, class)
				}
				i = end - 1
			}
		}

		// Fuzzy pass: whole words within edit distance 2, for terms longer
		// than 4 runes only. Shorter terms produce too many false matches.
		if utf8.RuneCountInString(lowerTerm) > 4 {
			forEachWord(folded, func(start, end int) {
				word := string(folded[start:end])
				if LevenshteinDistance(word, lowerTerm) <= 2 && free(start, end) {
					claim(start, end, class)
				}
			})
		}
	}

	if len(spans) == 0 {
		return escaped
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(escaped) + len(spans)*32)
	last := 0
	for _, s := range spans {
		b.WriteString(string(runes[last:s.start]))
		b.WriteString(`<mark class="`)
		b.WriteString(s.class)
		b.WriteString(`">`)
		b.WriteString(string(runes[s.start:s.end]))
		b.WriteString(`</mark>`)
		last = s.end
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

// foldRune lowercases a rune and folds ё to е, mirroring the normalization
// applied to query terms.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r == 'ё' {
		return 'е'
	}
	return r
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// extendsWord reports whether r continues a highlighted word: letters and
// combining marks, but not digits or punctuation.
func extendsWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// forEachWord calls fn with the [start, end) rune bounds of every maximal
// letter/digit run.
func forEachWord(runes []rune, fn func(start, end int)) {
	start := -1
	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			fn(start, i)
			start = -1
		}
	}
	if start >= 0 {
		fn(start, len(runes))
	}
}
