// Package cli provides CLI output helpers for poisk.
package cli

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"

	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

var markPattern = regexp.MustCompile(`</?mark[^>]*>`)

// PlainText strips highlight markup and unescapes HTML entities so snippets
// read naturally in a terminal.
func PlainText(s string) string {
	return html.UnescapeString(markPattern.ReplaceAllString(s, ""))
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms\n", response.Total, response.QueryTime)
	if response.CorrectedQuery != "" {
		fmt.Fprintf(w, "Showing results for: %s\n", response.CorrectedQuery)
	}
	fmt.Fprintln(w)
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %d\n", result.Rank, result.Score)
	fmt.Fprintf(w, "ID: %s\n", result.Document.ID)
	if result.Document.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", PlainText(result.TitleHTML))
	}
	if len(result.Snippets) > 0 {
		fmt.Fprintln(w)
		for _, snippet := range result.Snippets {
			fmt.Fprintf(w, "  %s\n", utils.Truncate(PlainText(snippet), 200))
		}
	}
	fmt.Fprintln(w)
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
