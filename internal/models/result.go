package models

// SearchResult represents a single search hit.
type SearchResult struct {
	Document *Document `json:"document"`
	// Score is the integer relevance score (always >= 0 in results; rejected
	// documents never reach a response).
	Score int `json:"score"`
	// TitleHTML is the document title with matched terms wrapped in markup.
	TitleHTML string `json:"title_html"`
	// Snippets are highlighted body fragments, at most five per document.
	Snippets []string `json:"snippets,omitempty"`
	Rank     int      `json:"rank"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
	// CorrectedQuery is set when the term set that produced the results
	// differs from the literal input (keyboard-layout correction or stemmed
	// fallback), for "showing results for ..." display.
	CorrectedQuery string `json:"corrected_query,omitempty"`
}
