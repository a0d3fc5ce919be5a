package index

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/poisklab/poisk/internal/models"
)

// BleveIndex implements CandidateIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// indexedDoc is what actually goes into the index: title and body only.
// Timestamps and paths would pollute term statistics.
type indexedDoc struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// reused; remove the directory to force a full re-index after a mapping
// change.
//
// The standard analyzer (lowercase + tokenize, no stemming) is deliberate:
// morphological matching is the relevance core's job, and candidate recall
// for inflected forms comes from the engine's stemmed-query fallback. A
// language-specific analyzer here would make index terms diverge from the
// core's stems.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("body", textFieldMapping)
	im.AddDocumentMapping("document", docMapping)
	im.DefaultType = "document"
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// NewMemBleveIndex creates an in-memory index, used in tests.
func NewMemBleveIndex() (*BleveIndex, error) {
	im := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index indexes a document's title and body under its ID.
func (b *BleveIndex) Index(ctx context.Context, id string, doc *models.Document) error {
	return b.index.Index(id, &indexedDoc{Title: doc.Title, Body: doc.Body})
}

// Search runs a match query over title and body and returns candidate IDs
// best-first. Candidate order is the stable tie-break for equal relevance
// scores downstream.
//
// Each query token is also tried as a term prefix, so a stemmed query like
// "расход" recalls documents that only contain inflected forms such as
// "расходам".
func (b *BleveIndex) Search(ctx context.Context, query string, limit int) ([]*Candidate, error) {
	q := bleve.NewDisjunctionQuery(bleve.NewMatchQuery(query))
	for _, token := range strings.Fields(strings.ToLower(query)) {
		q.AddQuery(bleve.NewPrefixQuery(token))
	}
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}
	out := make([]*Candidate, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &Candidate{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Delete removes a document from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// DocCount returns the number of indexed documents.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the underlying index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
