// Package models defines core data structures for documents, queries, and search results.
package models

import "time"

// Document represents a stored document. Title and Body are plain text; the
// search core never sees markup except what it generates itself.
type Document struct {
	ID         string    `json:"id" db:"id"`
	SourcePath string    `json:"source_path,omitempty" db:"source_path"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// DocumentInput is the input for creating or updating a document.
type DocumentInput struct {
	ID         string `json:"id,omitempty"`
	SourcePath string `json:"source_path,omitempty"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body"`
}
