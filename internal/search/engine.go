// Package search orchestrates query normalization, candidate discovery,
// relevance scoring, and highlighting into a single search operation.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/poisklab/poisk/internal/config"
	"github.com/poisklab/poisk/internal/highlight"
	"github.com/poisklab/poisk/internal/index"
	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/internal/query"
	"github.com/poisklab/poisk/internal/relevance"
	"github.com/poisklab/poisk/internal/storage"
)

// Engine runs morphological search over stored documents.
type Engine struct {
	storage storage.Storage
	index   index.CandidateIndex
	config  *config.SearchConfig
	logger  *zap.Logger
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(st storage.Storage, idx index.CandidateIndex, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	return &Engine{
		storage: st,
		index:   idx,
		config:  cfg,
		logger:  logger,
	}
}

// attempt is one rung of the query fallback ladder: the query text sent to
// the candidate index plus its tokenized form used for scoring.
type attempt struct {
	text  string
	words []string
	stems []string
}

// scored pairs a surviving document with its relevance score.
type scored struct {
	doc   *models.Document
	score int
}

// Search resolves q against the corpus. The literal query is tried first;
// when it yields nothing, a keyboard-layout-corrected variant and then a
// stemmed rewrite are tried in turn. When a fallback produced the results,
// the response carries the rewritten query in CorrectedQuery.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	literal := makeAttempt(q.Query)
	if len(literal.words) == 0 {
		return emptyResponse(q.Query, startTime), nil
	}

	attempts := []attempt{literal}
	if corrected := query.CorrectKeyboardLayout(q.Query); corrected != "" {
		if a := makeAttempt(corrected); len(a.words) > 0 && !sameWords(a.words, literal.words) {
			attempts = append(attempts, a)
		}
	}
	if stemmed := query.StemJoin(literal.text); stemmed != "" {
		if a := makeAttempt(stemmed); len(a.words) > 0 && !sameWords(a.words, literal.words) {
			attempts = append(attempts, a)
		}
	}

	var results []scored
	used := literal
	for _, a := range attempts {
		matched, err := e.runAttempt(ctx, a)
		if err != nil {
			return nil, err
		}
		if len(matched) > 0 {
			results = matched
			used = a
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	total := len(results)
	start := q.Offset
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	page := results[start:end]

	terms := highlightTerms(used.words, literal.words)
	out := make([]*models.SearchResult, 0, len(page))
	for i, r := range page {
		out = append(out, &models.SearchResult{
			Document:  r.doc,
			Score:     r.score,
			TitleHTML: highlight.Highlight(r.doc.Title, terms),
			Snippets:  highlight.BuildSnippets(r.doc.Body, terms),
			Rank:      start + i + 1,
		})
	}

	resp := &models.SearchResponse{
		Results:   out,
		Total:     total,
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     q.Query,
	}
	if !sameWords(used.words, literal.words) {
		resp.CorrectedQuery = used.text
	}

	e.logger.Debug("search completed",
		zap.String("query", q.Query),
		zap.String("corrected_query", resp.CorrectedQuery),
		zap.Int("total", total),
		zap.Int64("query_time_ms", resp.QueryTime))
	return resp, nil
}

// runAttempt fetches candidates for one ladder rung and scores each against
// the attempt's terms. Rejected documents are dropped.
func (e *Engine) runAttempt(ctx context.Context, a attempt) ([]scored, error) {
	candidates, err := e.index.Search(ctx, a.text, e.config.TopKCandidates)
	if err != nil {
		return nil, fmt.Errorf("candidate search failed: %w", err)
	}

	var results []scored
	for _, c := range candidates {
		doc, err := e.storage.GetDocument(ctx, c.ID)
		if err != nil {
			e.logger.Warn("candidate document missing from storage",
				zap.String("id", c.ID), zap.Error(err))
			continue
		}
		s := relevance.Score(doc, a.text, a.words, a.stems)
		if s == relevance.Rejected {
			continue
		}
		results = append(results, scored{doc: doc, score: s})
	}
	return results, nil
}

// makeAttempt normalizes raw query text into a ladder rung: stop words
// stripped, tokenized, with index-aligned stems.
func makeAttempt(text string) attempt {
	cleaned := query.StripStopWords(text)
	words := query.Tokenize(cleaned)
	return attempt{
		text:  cleaned,
		words: words,
		stems: query.Stems(words),
	}
}

// highlightTerms merges the winning attempt's words with the literal query's
// words. Winning words are styled as current; literal words that did not
// survive into the winning attempt are styled as previous so the user can
// see what was rewritten.
func highlightTerms(usedWords, literalWords []string) []highlight.Term {
	terms := highlight.Terms(usedWords)
	current := make(map[string]bool, len(usedWords))
	for _, w := range usedWords {
		current[w] = true
	}
	for _, w := range literalWords {
		if current[w] {
			continue
		}
		current[w] = true
		terms = append(terms, highlight.Term{Text: w, Class: highlight.TermPrevious})
	}
	return terms
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func emptyResponse(q string, startTime time.Time) *models.SearchResponse {
	return &models.SearchResponse{
		Results:   []*models.SearchResult{},
		Total:     0,
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     q,
	}
}
