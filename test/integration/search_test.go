// Package integration provides end-to-end tests over real storage and a
// persistent candidate index.
package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/poisklab/poisk/internal/config"
	"github.com/poisklab/poisk/internal/index"
	"github.com/poisklab/poisk/internal/ingest"
	"github.com/poisklab/poisk/internal/models"
	"github.com/poisklab/poisk/internal/search"
	"github.com/poisklab/poisk/internal/storage"
)

func setup(t *testing.T) (*search.Engine, *ingest.Ingestor) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Storage: config.StorageConfig{
			DatabasePath:   filepath.Join(dir, "db.sqlite"),
			BleveIndexPath: filepath.Join(dir, "bleve"),
		},
	}
	config.ApplyDefaults(cfg)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	idx, err := index.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })

	engine := search.NewEngine(store, idx, &cfg.Search, zap.NewNop())
	return engine, ingest.NewIngestor(store, idx)
}

func TestIntegration_Search(t *testing.T) {
	engine, ing := setup(t)
	ctx := context.Background()

	corpus := []*models.DocumentInput{
		{ID: "expenses", Title: "Годовой отчет по расходам",
			Body: "Все документы по расходам отдела собраны здесь. Каждый расход подтвержден."},
		{ID: "meeting", Title: "Протокол совещания",
			Body: "Обсуждали планы на квартал. Решений по бюджету не приняли."},
		{ID: "greeting", Title: "Приветствие",
			Body: "Здесь написано привет новым сотрудникам."},
	}
	for _, doc := range corpus {
		if _, err := ing.IndexDocument(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("inflected query finds base forms", func(t *testing.T) {
		resp, err := engine.Search(ctx, &models.SearchQuery{Query: "документами о расходах"})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Total != 1 || resp.Results[0].Document.ID != "expenses" {
			t.Fatalf("got %d results, want the expenses document: %+v", resp.Total, resp.Results)
		}
		if !strings.Contains(resp.Results[0].TitleHTML, "<mark") {
			t.Errorf("title not highlighted: %q", resp.Results[0].TitleHTML)
		}
	})

	t.Run("wrong keyboard layout is corrected", func(t *testing.T) {
		resp, err := engine.Search(ctx, &models.SearchQuery{Query: "ghbdtn"})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Total != 1 || resp.Results[0].Document.ID != "greeting" {
			t.Fatalf("keyboard correction failed: %+v", resp)
		}
		if resp.CorrectedQuery != "привет" {
			t.Errorf("CorrectedQuery = %q, want %q", resp.CorrectedQuery, "привет")
		}
	})

	t.Run("unmatched query returns nothing", func(t *testing.T) {
		resp, err := engine.Search(ctx, &models.SearchQuery{Query: "подводная лодка"})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Total != 0 {
			t.Errorf("Total = %d, want 0", resp.Total)
		}
	})
}

func TestIntegration_FileLifecycle(t *testing.T) {
	engine, ing := setup(t)
	ctx := context.Background()

	if _, err := ing.IndexDocument(ctx, &models.DocumentInput{
		ID:    "doomed",
		Title: "Временный документ",
		Body:  "Этот документ скоро удалят.",
	}); err != nil {
		t.Fatal(err)
	}

	resp, err := engine.Search(ctx, &models.SearchQuery{Query: "временный документ"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Fatalf("before delete: Total = %d, want 1", resp.Total)
	}

	if err := ing.DeleteDocument(ctx, "doomed"); err != nil {
		t.Fatal(err)
	}
	resp, err = engine.Search(ctx, &models.SearchQuery{Query: "временный документ"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 {
		t.Errorf("after delete: Total = %d, want 0", resp.Total)
	}
}
