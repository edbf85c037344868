package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bdbt/tipsearch/internal/analysis"
	"github.com/bdbt/tipsearch/internal/analytics"
	"github.com/bdbt/tipsearch/internal/catalog"
	"github.com/bdbt/tipsearch/internal/index"
	"github.com/bdbt/tipsearch/internal/models"
	"github.com/bdbt/tipsearch/internal/search"
	"github.com/bdbt/tipsearch/internal/storage"
)

const testCatalog = `[
  {"id": 1, "title": "Morning Meditation", "category": "happiness", "difficulty": "Easy",
   "description": "Ten minutes of quiet breathing before breakfast", "tags": ["mindfulness"]},
  {"id": 2, "title": "Investment Basics", "category": "wealth", "difficulty": "Moderate",
   "description": "Start with index funds and compound interest", "tags": ["finance"]},
  {"id": 3, "title": "Cold Shower Challenge", "category": "health", "difficulty": "Advanced",
   "description": "Thirty days of cold showers for resilience", "tags": ["resilience"], "is_featured": true}
]`

// buildStack wires storage, catalog import, index, analytics, and engine the
// way the server command does.
func buildStack(t *testing.T) (*search.Engine, *analytics.SQLiteRecorder, storage.Storage) {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "tips.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	recorder, err := analytics.NewSQLiteRecorder(filepath.Join(dir, "tips.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { recorder.Close() })

	ctx := context.Background()
	if _, err := catalog.Import(ctx, store, catalogPath, nil); err != nil {
		t.Fatal(err)
	}

	ix := index.New(analysis.NewTokenizer(nil))
	engine := search.NewEngine(ix, store, search.Options{
		Trending: search.NewAnalyticsTrending(recorder, nil, 5, nil),
	})
	if err := engine.Reindex(ctx); err != nil {
		t.Fatal(err)
	}
	return engine, recorder, store
}

func TestFullPipeline(t *testing.T) {
	engine, _, _ := buildStack(t)
	ctx := context.Background()

	resp, err := engine.Search(ctx, &models.SearchQuery{Query: "medit"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Results[0].Tip.ID != 1 {
		t.Fatalf("query \"medit\": %+v", resp.Results)
	}

	resp, err = engine.Search(ctx, &models.SearchQuery{
		Query:   "cold",
		Filters: &models.Filters{Categories: []models.Category{models.CategoryHealth}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Results[0].Tip.ID != 3 {
		t.Fatalf("filtered query \"cold\": %+v", resp.Results)
	}
	if resp.Facets.Categories["health"] != 1 {
		t.Errorf("facets = %v", resp.Facets.Categories)
	}
}

func TestCatalogReimportAndReindex(t *testing.T) {
	engine, _, store := buildStack(t)
	ctx := context.Background()

	if err := store.UpsertTip(ctx, &models.Tip{ID: 4, Title: "Gratitude Journal", Category: models.CategoryHappiness}); err != nil {
		t.Fatal(err)
	}
	// Before the rebuild the new tip is invisible.
	resp, err := engine.Search(ctx, &models.SearchQuery{Query: "gratitude"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 {
		t.Fatal("tip visible before reindex")
	}

	if err := engine.Reindex(ctx); err != nil {
		t.Fatal(err)
	}
	resp, err = engine.Search(ctx, &models.SearchQuery{Query: "gratitude"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Fatal("tip not searchable after reindex")
	}
}

func TestAnalyticsDrivenTrending(t *testing.T) {
	engine, recorder, _ := buildStack(t)
	ctx := context.Background()

	// No data yet: the static fallback serves.
	if len(engine.Trending()) == 0 {
		t.Fatal("expected fallback trending list")
	}

	for i := 0; i < 3; i++ {
		if err := recorder.LogSearch(ctx, "meditation", 1, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := recorder.LogSearch(ctx, "budgeting", 1, 0); err != nil {
		t.Fatal(err)
	}

	trending := engine.Trending()
	if len(trending) == 0 || trending[0] != "meditation" {
		t.Errorf("trending = %v, want meditation first", trending)
	}
}

func TestSearchLogging(t *testing.T) {
	_, recorder, store := buildStack(t)
	ctx := context.Background()

	eng := search.NewEngine(index.New(analysis.NewTokenizer(nil)), store, search.Options{Recorder: recorder})
	if err := eng.Reindex(ctx); err != nil {
		t.Fatal(err)
	}

	eng.RecordClick("cold shower", 3)
	top, err := recorder.TopQueries(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0] != "cold shower" {
		t.Errorf("top = %v", top)
	}

	if _, err := eng.Search(ctx, &models.SearchQuery{Query: "meditation"}); err != nil {
		t.Fatal(err)
	}
	// Search logging is asynchronous; give it a moment to land.
	deadline := time.Now().Add(2 * time.Second)
	for {
		top, err = recorder.TopQueries(ctx, 5)
		if err != nil {
			t.Fatal(err)
		}
		if len(top) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("search not logged, top = %v", top)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
