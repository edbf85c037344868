// Package main is the tipsearch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bdbt/tipsearch/internal/analysis"
	"github.com/bdbt/tipsearch/internal/analytics"
	"github.com/bdbt/tipsearch/internal/catalog"
	"github.com/bdbt/tipsearch/internal/cli"
	"github.com/bdbt/tipsearch/internal/config"
	"github.com/bdbt/tipsearch/internal/index"
	"github.com/bdbt/tipsearch/internal/models"
	"github.com/bdbt/tipsearch/internal/search"
	"github.com/bdbt/tipsearch/internal/server"
	"github.com/bdbt/tipsearch/internal/storage"
	"github.com/bdbt/tipsearch/internal/watcher"
	"github.com/bdbt/tipsearch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/tipsearch/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used. Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("tipsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	recorder, err := analytics.NewSQLiteRecorder(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open analytics recorder", zap.Error(err))
	}
	defer recorder.Close()

	tokenizer := analysis.NewTokenizer(cfg.Search.StopWords)
	idx := index.New(tokenizer)

	var trending search.TrendingProvider = search.NewStaticTrending(cfg.Search.TrendingSearches)
	if cfg.Search.AnalyticsTrending {
		trending = search.NewAnalyticsTrending(recorder, trending, 0, logger)
	}

	engine := search.NewEngine(idx, store, search.Options{
		Weights:         cfg.Scoring,
		DefaultLimit:    cfg.Search.DefaultLimit,
		MaxLimit:        cfg.Search.MaxLimit,
		SuggestionLimit: cfg.Search.SuggestionLimit,
		Popular:         search.NewStaticPopular(cfg.Search.PopularSearches),
		Trending:        trending,
		Recorder:        recorder,
		Logger:          logger,
	})

	if cfg.Storage.CatalogPath != "" {
		imported, err := catalog.Import(ctx, store, cfg.Storage.CatalogPath, logger)
		if err != nil {
			logger.Fatal("failed to import catalog", zap.Error(err))
		}
		logger.Info("catalog imported", zap.Int("tips", imported))
	}
	if err := engine.Reindex(ctx); err != nil {
		logger.Fatal("failed to build index", zap.Error(err))
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if cfg.Storage.CatalogPath != "" && cfg.Watch.EnabledOrDefault() {
		w := watcher.NewWatcher(
			cfg.Storage.CatalogPath,
			time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
			func() {
				if _, err := catalog.Import(context.Background(), store, cfg.Storage.CatalogPath, logger); err != nil {
					logger.Error("catalog reimport failed", zap.Error(err))
					return
				}
				if err := engine.Reindex(context.Background()); err != nil {
					logger.Error("reindex failed", zap.Error(err))
				}
			},
			logger,
		)
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("failed to start catalog watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(engine, store, &cfg.Server, logger)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errChan:
		logger.Fatal("server failed", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server address")
	limit := fs.Int("limit", 10, "max results")
	offset := fs.Int("offset", 0, "results offset")
	sortBy := fs.String("sort", "relevance", "sort key: relevance|date|popularity|rating")
	order := fs.String("order", "desc", "sort order: asc|desc")
	category := fs.String("category", "", "filter by category")
	format := fs.String("format", "text", "output format: text|json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: tipsearch search [flags] <query>")
		os.Exit(1)
	}
	query := models.SearchQuery{
		Query:     fs.Arg(0),
		SortBy:    models.SortBy(*sortBy),
		SortOrder: models.SortOrder(*order),
		Limit:     *limit,
		Offset:    *offset,
	}
	if *category != "" {
		query.Filters = &models.Filters{Categories: []models.Category{models.Category(*category)}}
	}

	body, err := json.Marshal(&query)
	if err != nil {
		fmt.Printf("Failed to encode query: %v\n", err)
		os.Exit(1)
	}
	resp, err := http.Post(*addr+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Search request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		exitWithServerError(resp)
	}

	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		os.Exit(1)
	}
	_ = cli.WriteSearchResults(os.Stdout, &response, cli.OutputFormat(*format))
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server address")
	limit := fs.Int("limit", 10, "max suggestions")
	format := fs.String("format", "text", "output format: text|json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: tipsearch suggest [flags] <partial-query>")
		os.Exit(1)
	}
	u := fmt.Sprintf("%s/api/v1/suggest?q=%s&limit=%d", *addr, url.QueryEscape(fs.Arg(0)), *limit)
	resp, err := http.Get(u)
	if err != nil {
		fmt.Printf("Suggest request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		exitWithServerError(resp)
	}

	var payload struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		os.Exit(1)
	}
	_ = cli.WriteSuggestions(os.Stdout, payload.Suggestions, cli.OutputFormat(*format))
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: tipsearch import [flags] <catalog.json>")
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	imported, err := catalog.Import(context.Background(), store, fs.Arg(0), logger)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d tips into %s\n", imported, cfg.Storage.DatabasePath)
	fmt.Println("A running server picks up the change on its next reindex (POST /api/v1/reindex).")
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server address")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*addr + "/api/v1/status")
	if err != nil {
		fmt.Printf("Status request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		exitWithServerError(resp)
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		os.Exit(1)
	}
	if tips, ok := status["tips"].(float64); ok {
		fmt.Printf("Tips in catalog: %s\n", strconv.Itoa(int(tips)))
	}
	if terms, ok := status["index_terms"].(float64); ok {
		fmt.Printf("Index terms:     %s\n", strconv.Itoa(int(terms)))
	}
	if builtAt, ok := status["built_at"].(string); ok {
		fmt.Printf("Index built at:  %s\n", builtAt)
	}
}

func exitWithServerError(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Server returned %d: %s\n", resp.StatusCode, string(body))
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`tipsearch - BDBT tip catalog search service

Usage:
  tipsearch server  [-config path] [-debug]        start the HTTP server
  tipsearch search  [flags] <query>                search tips via a running server
  tipsearch suggest [flags] <partial-query>        autocomplete suggestions
  tipsearch import  [-config path] <catalog.json>  import a catalog file
  tipsearch status  [-addr url]                    show server status
  tipsearch version                                print version`)
}
