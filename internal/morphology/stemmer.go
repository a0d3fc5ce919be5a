// Package morphology implements a light suffix-stripping stemmer for Russian.
//
// The stemmer operates on the RV region of a word: everything after the first
// vowel. Suffix groups are applied to RV in a fixed order; the prefix up to
// and including the first vowel is never touched. Stems are not dictionary
// forms: two inflected forms of one word are expected to collide on the same
// stem, and search matching exploits exactly that.
package morphology

import "strings"

const vowels = "аеиоуыэюя"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

// Normalize lowercases a word and folds ё to е. All stemming and scoring
// treats the two as the same vowel.
func Normalize(word string) string {
	return strings.ReplaceAll(strings.ToLower(word), "ё", "е")
}

// Stem reduces a single word to its stem. Pure and deterministic; input is
// normalized internally, so callers may pass raw words. A word with no vowel
// has no RV region and passes through unchanged. The result is never longer
// than the input.
func Stem(word string) string {
	w := Normalize(word)

	runes := []rune(w)
	rvStart := -1
	for i, r := range runes {
		if isVowel(r) {
			rvStart = i + 1
			break
		}
	}
	if rvStart < 0 {
		return w
	}
	rv := runes[rvStart:]

	// Step 1: perfective gerund wins outright; otherwise strip the
	// reflexive ending and try adjective (plus trailing participle),
	// then verb, then noun. First matching group ends the step.
	if trimmed, ok := trim(rv, perfectiveGerund); ok {
		rv = trimmed
	} else {
		rv, _ = trim(rv, reflexive)
		if trimmed, ok := trim(rv, adjective); ok {
			rv = trimmed
			rv, _ = trim(rv, participle)
		} else if trimmed, ok := trim(rv, verb); ok {
			rv = trimmed
		} else {
			rv, _ = trim(rv, noun)
		}
	}

	// Step 2: trailing и.
	if n := len(rv); n > 0 && rv[n-1] == 'и' {
		rv = rv[:n-1]
	}

	// Step 3: derivational ость/ост.
	rv = trimDerivational(rv)

	// Step 4: trailing soft sign, else superlative and double-н collapse.
	if n := len(rv); n > 0 && rv[n-1] == 'ь' {
		rv = rv[:n-1]
	} else {
		rv, _ = trim(rv, superlative)
		if n := len(rv); n >= 2 && rv[n-1] == 'н' && rv[n-2] == 'н' {
			rv = rv[:n-1]
		}
	}

	return string(runes[:rvStart]) + string(rv)
}

// trim strips the first matching rule of the group from the end of rv.
// Rules are pre-sorted longest-suffix-first, so the longest applicable
// suffix wins within a group.
func trim(rv []rune, rules []rule) ([]rune, bool) {
	for _, r := range rules {
		n := len(rv) - len(r.suffix)
		if n < 0 {
			continue
		}
		if !equalRunes(rv[n:], r.suffix) {
			continue
		}
		if r.afterAYa {
			if n == 0 || (rv[n-1] != 'а' && rv[n-1] != 'я') {
				continue
			}
		}
		return rv[:n], true
	}
	return rv, false
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// trimDerivational strips a trailing ость/ост when RV has the derivational
// shape: a consonant, one or more vowels, one or more consonants, a vowel,
// then anything. Without that shape the suffix is part of the root.
func trimDerivational(rv []rune) []rune {
	var suffix int
	switch {
	case hasRuneSuffix(rv, "ость"):
		suffix = 4
	case hasRuneSuffix(rv, "ост"):
		suffix = 3
	default:
		return rv
	}
	if !derivationalShape(rv) {
		return rv
	}
	return rv[:len(rv)-suffix]
}

func hasRuneSuffix(rv []rune, s string) bool {
	suf := []rune(s)
	n := len(rv) - len(suf)
	return n >= 0 && equalRunes(rv[n:], suf)
}

// derivationalShape reports whether rv starts with consonant, vowel+,
// consonant+, vowel.
func derivationalShape(rv []rune) bool {
	i := 0
	if i >= len(rv) || isVowel(rv[i]) {
		return false
	}
	i++
	start := i
	for i < len(rv) && isVowel(rv[i]) {
		i++
	}
	if i == start {
		return false
	}
	start = i
	for i < len(rv) && !isVowel(rv[i]) {
		i++
	}
	if i == start {
		return false
	}
	return i < len(rv) && isVowel(rv[i])
}
