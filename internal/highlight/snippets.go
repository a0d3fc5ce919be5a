package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/poisklab/poisk/internal/morphology"
)

// maxSnippets caps how many body fragments a single document contributes.
const maxSnippets = 5

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// BuildSnippets extracts up to five sentence-like fragments of body that
// contain a query term, each passed through Highlight. Existing markup is
// stripped first so document HTML never leaks into snippets. Blocks are
// scanned in body order; the result may be shorter than the cap.
func BuildSnippets(body string, terms []Term) []string {
	if body == "" || len(terms) == 0 {
		return nil
	}
	plain := tagPattern.ReplaceAllString(body, " ")

	sorted := make([]Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Text) > utf8.RuneCountInString(sorted[j].Text)
	})

	var snippets []string
	for _, block := range splitSentences(plain) {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" {
			continue
		}
		if !blockMatches(trimmed, sorted) {
			continue
		}
		snippets = append(snippets, Highlight(trimmed, terms))
		if len(snippets) == maxSnippets {
			break
		}
	}
	return snippets
}

// blockMatches reports whether any term occurs in the block,
// case-insensitively. Terms are pre-sorted longest-first.
func blockMatches(block string, sorted []Term) bool {
	folded := morphology.Normalize(block)
	for _, term := range sorted {
		t := morphology.Normalize(term.Text)
		if t != "" && strings.Contains(folded, t) {
			return true
		}
	}
	return false
}

// splitSentences splits text into sentence-like blocks on '.', '?', '!' and
// newline. The delimiter stays with the preceding block.
func splitSentences(text string) []string {
	var blocks []string
	var current []rune
	for _, r := range text {
		current = append(current, r)
		if r == '.' || r == '?' || r == '!' || r == '\n' {
			blocks = append(blocks, string(current))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, string(current))
	}
	return blocks
}
