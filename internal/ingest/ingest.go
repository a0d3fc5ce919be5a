// Package ingest stores documents and registers them with the candidate
// index, including file-based ingestion for watched directories.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poisklab/poisk/internal/fileid"
	"github.com/poisklab/poisk/internal/index"
	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/internal/storage"
)

// Ingestor writes documents into storage and the candidate index.
type Ingestor struct {
	storage storage.Storage
	index   index.CandidateIndex
	logger  *zap.Logger // optional; when set, logs debug events
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets a logger for debug output (file indexed, document deleted, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(ing *Ingestor) { ing.logger = l }
}

// NewIngestor creates an ingestor with the given dependencies.
func NewIngestor(st storage.Storage, idx index.CandidateIndex, opts ...Option) *Ingestor {
	ing := &Ingestor{storage: st, index: idx}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IndexDocument stores a document and adds it to the candidate index. A
// missing ID gets a generated one. An existing document with the same ID is
// replaced.
func (ing *Ingestor) IndexDocument(ctx context.Context, input *models.DocumentInput) (*models.Document, error) {
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	doc := &models.Document{
		ID:         input.ID,
		SourcePath: input.SourcePath,
		Title:      input.Title,
		Body:       Preprocess(input.Body),
	}
	if _, err := ing.storage.GetDocument(ctx, doc.ID); err == nil {
		if err := ing.storage.UpdateDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to update document: %w", err)
		}
	} else {
		if err := ing.storage.CreateDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
	}
	// Index the title with underscores as spaces so file names like
	// "otchet_2024.txt" are searchable as separate words.
	docForIndex := *doc
	docForIndex.Title = strings.ReplaceAll(doc.Title, "_", " ")
	if err := ing.index.Index(ctx, doc.ID, &docForIndex); err != nil {
		return nil, fmt.Errorf("failed to index document: %w", err)
	}
	return doc, nil
}

// DeleteDocument removes a document from storage and the candidate index.
func (ing *Ingestor) DeleteDocument(ctx context.Context, id string) error {
	if err := ing.storage.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := ing.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove from index: %w", err)
	}
	if ing.logger != nil {
		ing.logger.Debug("document deleted", zap.String("id", id))
	}
	return nil
}

// IndexFile reads a file from path and ingests it as a document. The ID is
// derived from the absolute path so re-indexing updates the same document.
// If allowedExts is non-empty, the file's extension must be in the list
// (case-insensitive). Unchanged files, judged by modification time against
// the stored record, are skipped.
func (ing *Ingestor) IndexFile(ctx context.Context, path string, allowedExts []string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", absPath)
	}

	docID := fileid.FileDocID(absPath)
	if existing, err := ing.storage.GetDocument(ctx, docID); err == nil {
		if !existing.UpdatedAt.Before(info.ModTime()) {
			if ing.logger != nil {
				ing.logger.Debug("skipping unchanged file", zap.String("path", absPath))
			}
			return nil
		}
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	_, err = ing.IndexDocument(ctx, &models.DocumentInput{
		ID:         docID,
		SourcePath: absPath,
		Title:      strings.TrimSuffix(filepath.Base(absPath), ext),
		Body:       string(content),
	})
	if err != nil {
		return err
	}
	if ing.logger != nil {
		ing.logger.Debug("file indexed", zap.String("path", absPath), zap.String("doc_id", docID))
	}
	return nil
}

// RemoveFile deletes the document ingested from path, if any.
func (ing *Ingestor) RemoveFile(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	return ing.DeleteDocument(ctx, fileid.FileDocID(absPath))
}

// IndexDirectory walks dir recursively and ingests each regular file whose
// extension is in allowedExts (all files when the list is empty). Returns
// the number of files indexed and the first error encountered.
func (ing *Ingestor) IndexDirectory(ctx context.Context, dir string, allowedExts []string) (n int, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
			return nil
		}
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		if indexErr := ing.IndexFile(ctx, path, allowedExts); indexErr != nil {
			return indexErr
		}
		n++
		return nil
	})
	return n, err
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}
