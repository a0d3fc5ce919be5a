// Package index provides full-text candidate discovery for the search
// engine. The index only proposes document IDs for a query string; relevance
// scoring and rejection happen downstream in the morphological core.
package index

import (
	"context"

	"github.com/poisklab/poisk/internal/models"
)

// Candidate is a single candidate hit in discovery order.
type Candidate struct {
	ID    string
	Score float64
}

// CandidateIndex defines candidate discovery operations.
type CandidateIndex interface {
	Index(ctx context.Context, id string, doc *models.Document) error
	// Search returns up to limit candidate IDs for the query, best-first.
	// An empty result is not an error.
	Search(ctx context.Context, query string, limit int) ([]*Candidate, error)
	Delete(ctx context.Context, id string) error
	// DocCount returns the total number of indexed documents.
	DocCount() (uint64, error)
	Close() error
}
