package query

import (
	"strings"
	"unicode"

	"github.com/poisklab/poisk/internal/morphology"
)

// stopWords are common Russian function words (pronouns, conjunctions,
// prepositions, particles) that carry no search signal. The table is static
// configuration: extend the list, not the stripping code.
var stopWords = makeStopWordSet([]string{
	"и", "в", "во", "не", "что", "он", "на", "я", "с", "со", "как", "а",
	"то", "все", "она", "так", "его", "но", "да", "ты", "к", "у", "же",
	"вы", "за", "бы", "по", "только", "ее", "мне", "было", "вот", "от",
	"меня", "еще", "нет", "о", "из", "ему", "теперь", "когда", "даже",
	"ну", "вдруг", "ли", "если", "уже", "или", "ни", "быть", "был",
	"него", "до", "вас", "нибудь", "опять", "уж", "вам", "ведь", "там",
	"потом", "себя", "ничего", "ей", "может", "они", "тут", "где",
	"есть", "надо", "ней", "для", "мы", "тебя", "их", "чем", "была",
	"сам", "чтоб", "без", "будто", "чего", "раз", "тоже", "себе", "под",
	"будет", "ж", "тогда", "кто", "этот", "того", "потому", "этого",
	"какой", "совсем", "ним", "здесь", "этом", "один", "почти", "мой",
	"тем", "чтобы", "нее", "сейчас", "были", "куда", "зачем", "всех",
	"никогда", "можно", "при", "об", "хоть", "после", "над", "больше",
	"тот", "через", "эти", "нас", "про", "всего", "них", "какая",
	"много", "эту", "моя", "свою", "этой", "перед", "иногда", "лучше",
	"чуть", "том", "нельзя", "такой", "им", "более", "всегда", "всю",
	"между",
})

func makeStopWordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the lowercased word is in the stop-word list.
func IsStopWord(word string) bool {
	_, ok := stopWords[morphology.Normalize(word)]
	return ok
}

// StripStopWords lowercases text and removes whole-token stop-word matches.
// Remaining whitespace runs collapse to single spaces; the ends are trimmed.
func StripStopWords(text string) string {
	norm := morphology.Normalize(text)

	var b strings.Builder
	b.Grow(len(norm))
	var token []rune
	flush := func() {
		if len(token) == 0 {
			return
		}
		if _, stop := stopWords[string(token)]; !stop {
			b.WriteString(string(token))
		}
		token = token[:0]
	}
	for _, r := range norm {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			token = append(token, r)
		} else {
			flush()
			b.WriteRune(r)
		}
	}
	flush()

	return strings.Join(strings.Fields(b.String()), " ")
}
