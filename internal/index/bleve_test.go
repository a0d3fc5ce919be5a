package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poisklab/poisk/internal/models"
)

func TestBleveIndex_RoundTrip(t *testing.T) {
	idx, err := NewMemBleveIndex()
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	ctx := context.Background()

	docs := map[string]*models.Document{
		"d1": {ID: "d1", Title: "Годовой отчет", Body: "Все расходы за год."},
		"d2": {ID: "d2", Title: "Заметка", Body: "Ничего интересного."},
	}
	for id, doc := range docs {
		if err := idx.Index(ctx, id, doc); err != nil {
			t.Fatal(err)
		}
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("DocCount = %d, want 2", count)
	}

	hits, err := idx.Search(ctx, "расходы", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ID != "d1" {
		t.Errorf("search hits = %+v, want only d1", hits)
	}

	if err := idx.Delete(ctx, "d1"); err != nil {
		t.Fatal(err)
	}
	hits, err = idx.Search(ctx, "расходы", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("hits after delete = %+v, want none", hits)
	}
}

func TestBleveIndex_PrefixRecall(t *testing.T) {
	idx, err := NewMemBleveIndex()
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	ctx := context.Background()

	doc := &models.Document{ID: "d1", Title: "Отчет", Body: "Документы по расходам."}
	if err := idx.Index(ctx, "d1", doc); err != nil {
		t.Fatal(err)
	}

	// A stemmed query term must recall documents holding inflected forms.
	hits, err := idx.Search(ctx, "расход", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("stem prefix found %d hits, want 1", len(hits))
	}
}

func TestBleveIndex_Persistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bleve")
	ctx := context.Background()

	idx, err := NewBleveIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := &models.Document{ID: "d1", Title: "Отчет", Body: "расходы"}
	if err := idx.Index(ctx, "d1", doc); err != nil {
		t.Fatal(err)
	}
	if err := idx.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBleveIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	count, err := reopened.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("DocCount after reopen = %d, want 1", count)
	}
}
