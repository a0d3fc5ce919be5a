package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poisklab/poisk/internal/index"
	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/internal/storage"
)

func newTestIngestor(t *testing.T) (*Ingestor, storage.Storage, index.CandidateIndex) {
	t.Helper()
	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	idx, err := index.NewMemBleveIndex()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })

	return NewIngestor(st, idx), st, idx
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims", "  отчет  ", "отчет"},
		{"collapses spaces", "годовой   отчет", "годовой отчет"},
		{"tabs become spaces", "один\tдва", "один два"},
		{"newlines preserved", "первая строка\nвторая строка", "первая строка\nвторая строка"},
		{"blank lines collapse", "абзац\n\n\nследующий", "абзац\nследующий"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.input); got != tt.expected {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIngestor_IndexDocument(t *testing.T) {
	ing, st, idx := newTestIngestor(t)
	ctx := context.Background()

	doc, err := ing.IndexDocument(ctx, &models.DocumentInput{
		Title: "Отчет",
		Body:  "  Расходы   за год.  ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID == "" {
		t.Error("expected a generated document ID")
	}
	if doc.Body != "Расходы за год." {
		t.Errorf("body not preprocessed: %q", doc.Body)
	}

	stored, err := st.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Title != "Отчет" {
		t.Errorf("stored title = %q", stored.Title)
	}

	candidates, err := idx.Search(ctx, "расходы", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].ID != doc.ID {
		t.Errorf("document not discoverable in index: %+v", candidates)
	}
}

func TestIngestor_IndexDocument_ReplacesExisting(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	ctx := context.Background()

	if _, err := ing.IndexDocument(ctx, &models.DocumentInput{ID: "d1", Title: "Старый", Body: "старое тело"}); err != nil {
		t.Fatal(err)
	}
	if _, err := ing.IndexDocument(ctx, &models.DocumentInput{ID: "d1", Title: "Новый", Body: "новое тело"}); err != nil {
		t.Fatal(err)
	}

	doc, err := st.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Новый" {
		t.Errorf("title = %q, want replacement", doc.Title)
	}
	count, err := st.CountDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestIngestor_IndexFile(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "otchet_2024.txt")
	if err := os.WriteFile(path, []byte("Расходы за 2024 год."), 0600); err != nil {
		t.Fatal(err)
	}
	if err := ing.IndexFile(ctx, path, []string{".txt"}); err != nil {
		t.Fatal(err)
	}

	doc, err := st.GetDocumentBySourcePath(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "otchet_2024" {
		t.Errorf("title = %q, want base name without extension", doc.Title)
	}

	// Re-indexing an unchanged file is a no-op.
	firstUpdate := doc.UpdatedAt
	if err := ing.IndexFile(ctx, path, []string{".txt"}); err != nil {
		t.Fatal(err)
	}
	again, err := st.GetDocumentBySourcePath(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if !again.UpdatedAt.Equal(firstUpdate) {
		t.Error("unchanged file was re-ingested")
	}
}

func TestIngestor_IndexFile_ExtensionFilter(t *testing.T) {
	ing, _, _ := newTestIngestor(t)

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("binary"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := ing.IndexFile(context.Background(), path, []string{".txt", ".md"}); err == nil {
		t.Error("expected error for disallowed extension")
	}
}

func TestIngestor_IndexDirectory(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	ctx := context.Background()

	dir := t.TempDir()
	files := map[string]string{
		"a.txt": "первый документ",
		"b.md":  "второй документ",
		"c.jpg": "не текст",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	n, err := ing.IndexDirectory(ctx, dir, []string{".txt", ".md"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("indexed %d files, want 2", n)
	}
	count, err := st.CountDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("stored %d documents, want 2", count)
	}
}

func TestIngestor_RemoveFile(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "doomed.txt")
	if err := os.WriteFile(path, []byte("временный файл"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := ing.IndexFile(ctx, path, nil); err != nil {
		t.Fatal(err)
	}
	if err := ing.RemoveFile(ctx, path); err != nil {
		t.Fatal(err)
	}
	if count, _ := st.CountDocuments(ctx); count != 0 {
		t.Errorf("count = %d after removal, want 0", count)
	}
}
