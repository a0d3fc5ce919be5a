package morphology

import "sort"

// rule is a single suffix-stripping rule. When afterAYa is set, the rule only
// applies if the rune immediately before the suffix (inside RV) is а or я;
// that preceding vowel is kept.
type rule struct {
	suffix   []rune
	afterAYa bool
}

// group builds an ordered rule list from plain suffixes and suffixes that
// require a preceding а/я. Rules are checked longest-suffix-first so that a
// short suffix never shadows a longer one (e.g. "ам" before "а").
func group(plain, conditional []string) []rule {
	rules := make([]rule, 0, len(plain)+len(conditional))
	for _, s := range plain {
		rules = append(rules, rule{suffix: []rune(s)})
	}
	for _, s := range conditional {
		rules = append(rules, rule{suffix: []rune(s), afterAYa: true})
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].suffix) > len(rules[j].suffix)
	})
	return rules
}

// Rule groups of the Russian light stemmer. Group order and membership are
// load-bearing: reordering changes output on real words.
var (
	perfectiveGerund = group(
		[]string{"ив", "ивши", "ившись", "ыв", "ывши", "ывшись"},
		[]string{"в", "вши", "вшись"},
	)

	reflexive = group([]string{"ся", "сь"}, nil)

	adjective = group(
		[]string{
			"ее", "ие", "ые", "ое", "ими", "ыми", "ей", "ий", "ый", "ой",
			"ем", "им", "ым", "ом", "его", "ого", "ему", "ому", "их", "ых",
			"ую", "юю", "ая", "яя", "ою", "ею",
		},
		nil,
	)

	participle = group(
		[]string{"ивш", "ывш", "ующ"},
		[]string{"ем", "нн", "вш", "ющ", "щ"},
	)

	verb = group(
		[]string{
			"ила", "ыла", "ена", "ейте", "уйте", "ите", "или", "ыли", "ей",
			"уй", "ил", "ыл", "им", "ым", "ен", "ило", "ыло", "ено", "ят",
			"ует", "уют", "ит", "ыт", "ены", "ить", "ыть", "ишь", "ую", "ю",
		},
		[]string{
			"ла", "на", "ете", "йте", "ли", "й", "л", "ем", "н", "ло", "но",
			"ет", "ют", "ны", "ть", "ешь", "нно",
		},
	)

	noun = group(
		[]string{
			"а", "ев", "ов", "ие", "ье", "е", "иями", "ями", "ами", "еи",
			"ии", "и", "ией", "ей", "ой", "ий", "й", "иям", "ям", "ием",
			"ем", "ам", "ом", "о", "у", "ах", "иях", "ях", "ы", "ь", "ию",
			"ью", "ю", "ия", "ья", "я",
		},
		nil,
	)

	superlative = group([]string{"ейше", "ейш"}, nil)
)
