package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug not parsed")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 50 || cfg.Search.MaxLimit != 200 || cfg.Search.SuggestionLimit != 10 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Scoring == nil || cfg.Scoring.Title != 50 || cfg.Scoring.ExactPhrase != 75 {
		t.Errorf("scoring defaults = %+v", cfg.Scoring)
	}
	if cfg.Watch.DebounceMS != 400 || !cfg.Watch.EnabledOrDefault() {
		t.Errorf("watch defaults = %+v", cfg.Watch)
	}
}

func TestLoad_PartialScoringOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, "scoring:\n  title: 90\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scoring.Title != 90 {
		t.Errorf("scoring.title = %.0f, want override 90", cfg.Scoring.Title)
	}
	if cfg.Scoring.Subtitle != 30 || cfg.Scoring.Tag != 40 {
		t.Errorf("unset weights must keep defaults: %+v", cfg.Scoring)
	}
}

func TestLoad_ExpandsRelativePaths(t *testing.T) {
	path := writeConfig(t, "storage:\n  database_path: ./data/tips.db\n  catalog_path: ./catalog.json\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	if cfg.Storage.DatabasePath != filepath.Join(dir, "data/tips.db") {
		t.Errorf("database_path = %s", cfg.Storage.DatabasePath)
	}
	if cfg.Storage.CatalogPath != filepath.Join(dir, "catalog.json") {
		t.Errorf("catalog_path = %s", cfg.Storage.CatalogPath)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "server: [not a map]\n")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestWatchConfig_EnabledOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, "watch:\n  enabled: false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Watch.EnabledOrDefault() {
		t.Error("explicit enabled: false must stick")
	}
}
