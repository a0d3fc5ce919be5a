package relevance

import (
	"strings"
	"testing"

	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/internal/query"
)

func doc(title, body string) *models.Document {
	return &models.Document{ID: "d1", Title: title, Body: body}
}

// score runs the full normalization pipeline the engine uses: stop-word
// strip, tokenize, stem, then Score.
func score(t *testing.T, d *models.Document, q string) int {
	t.Helper()
	cleaned := query.StripStopWords(q)
	words := query.Tokenize(cleaned)
	return Score(d, cleaned, words, query.Stems(words))
}

func TestScore_WholeQueryInTitle(t *testing.T) {
	d := doc("годовой отчет о расходах", "текст без повторов")
	got := Score(d, "отчет о расходах", []string{"отчет", "расходах"}, []string{"отчет", "расход"})
	if got != 400 {
		t.Errorf("score = %d, want 400", got)
	}
}

func TestScore_WholeQueryInBody(t *testing.T) {
	d := doc("заявка", "вчера пришел отчет о расходах из бухгалтерии")
	got := Score(d, "отчет о расходах", []string{"отчет", "расходах"}, []string{"отчет", "расход"})
	if got != 200 {
		t.Errorf("score = %d, want 200", got)
	}
}

func TestScore_RejectsWhenAnyWordAbsent(t *testing.T) {
	d := doc("важные документы", "перечень приложен")
	got := Score(d, "документы крокодил", []string{"документы", "крокодил"}, []string{"документ", "крокодил"})
	if got != Rejected {
		t.Errorf("score = %d, want %d", got, Rejected)
	}
}

func TestScore_RejectsWhenFullyAbsent(t *testing.T) {
	d := doc("совсем другая тема", "ничто здесь не совпадает")
	got := Score(d, "квартальный бюджет", []string{"квартальный", "бюджет"}, []string{"квартальн", "бюджет"})
	if got != Rejected {
		t.Errorf("score = %d, want %d", got, Rejected)
	}
}

func TestScore_PerWordPath(t *testing.T) {
	// No verbatim whole-query match: per-word path with body counts,
	// proximity (+20) and early-position (+20) bonuses.
	d := doc("", "документы по расходам")
	got := Score(d, "документы расходам", []string{"документы", "расходам"}, []string{"документ", "расход"})
	want := 10 + 10 + 20 + 20
	if got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
}

func TestScore_StemPrefixRecoversInflectedForms(t *testing.T) {
	// The body contains different inflections than the query;
	// verbatim counts are zero, stem-as-prefix counting provides the credit.
	d := doc("заявка", "сотрудник предоставил документ о расходах за март")
	got := score(t, d, "документы по расходам")
	if got <= 0 {
		t.Fatalf("score = %d, want positive via stem-prefix path", got)
	}
	if got >= 200 {
		t.Errorf("score = %d, should not take the whole-query path", got)
	}
}

func TestScore_TitleCredit(t *testing.T) {
	// One word in the title, the other only in the body, no verbatim
	// whole-query match anywhere.
	d := doc("важные документы", "расходам посвящен раздел")
	got := Score(d, "документы расходам", []string{"документы", "расходам"}, []string{"документ", "расход"})
	// +100 title, +10 body count, +20 early position.
	if got != 130 {
		t.Errorf("score = %d, want 130", got)
	}
}

func TestScore_AllWordsInTitleBonus(t *testing.T) {
	d := doc("документы расходам", "")
	got := Score(d, "документы расходам списком", []string{"документы", "расходам"}, []string{"документ", "расход"})
	// Whole query is absent (extra word in query text), so the per-word path
	// runs: 100+100 title, +50 all-in-title, +20 position.
	if got != 270 {
		t.Errorf("score = %d, want 270", got)
	}
}

func TestScore_BodyCountCap(t *testing.T) {
	d := doc("", strings.Repeat("налог и ", 30)+"бюджет")
	got := Score(d, "налог бюджет", []string{"налог", "бюджет"}, []string{"налог", "бюджет"})
	// 30 occurrences cap at 100, +10 for the second word, +20 proximity
	// (the last pair is adjacent), +20 position.
	if got != 150 {
		t.Errorf("score = %d, want 150", got)
	}
}

func TestScore_NeverNegativeExceptSentinel(t *testing.T) {
	docs := []*models.Document{
		doc("", ""),
		doc("заголовок", "тело"),
		doc("отчет", "отчет отчет отчет"),
	}
	for _, d := range docs {
		got := Score(d, "отчет", []string{"отчет"}, []string{"отчет"})
		if got < 0 && got != Rejected {
			t.Errorf("score = %d: only %d may be negative", got, Rejected)
		}
	}
}

func TestScore_YoFolding(t *testing.T) {
	d := doc("отчёт за год", "")
	got := Score(d, "отчет", []string{"отчет"}, []string{"отчет"})
	if got <= 0 {
		t.Errorf("score = %d, want positive: ё and е are the same vowel", got)
	}
}
