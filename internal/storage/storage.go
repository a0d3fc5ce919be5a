// Package storage defines document persistence and its SQLite implementation.
package storage

import (
	"context"

	"github.com/poisklab/poisk/internal/models"
)

// Storage defines document persistence operations.
type Storage interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	// GetDocumentBySourcePath returns the document ingested from the given
	// file path, or an error if none exists.
	GetDocumentBySourcePath(ctx context.Context, path string) (*models.Document, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error)
	CountDocuments(ctx context.Context) (int, error)
	Close() error
}
