package query

import "strings"

// Keyboard rows of the Latin (QWERTY) layout and the Cyrillic (ЙЦУКЕН)
// characters on the same physical keys. The two strings are index-aligned;
// together they define a bijective character map. Swap the tables to support
// another layout pair.
const (
	latinRow    = `qwertyuiop[]asdfghjkl;'zxcvbnm,.`
	cyrillicRow = `йцукенгшщзхъфывапролджэячсмитьбю`
)

var (
	latinToCyrillic = makeLayoutMap(latinRow, cyrillicRow)
	cyrillicToLatin = makeLayoutMap(cyrillicRow, latinRow)
)

func makeLayoutMap(from, to string) map[rune]rune {
	fromRunes := []rune(from)
	toRunes := []rune(to)
	m := make(map[rune]rune, len(fromRunes))
	for i, r := range fromRunes {
		m[r] = toRunes[i]
	}
	return m
}

// CorrectKeyboardLayout remaps text typed with the wrong keyboard layout.
// Direction is auto-detected: any ASCII Latin letter means Latin→Cyrillic,
// otherwise Cyrillic→Latin. Output is lowercased; unmapped runes pass
// through. This is a character remap, not a language model; the result is
// one variant to try, never authoritative.
func CorrectKeyboardLayout(text string) string {
	lower := strings.ToLower(text)

	table := cyrillicToLatin
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			table = latinToCyrillic
			break
		}
	}

	var b strings.Builder
	b.Grow(len(lower) * 2)
	for _, r := range lower {
		if mapped, ok := table[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
