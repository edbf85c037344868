package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRecorder persists search log entries to SQLite. It can share a
// database file with the tip store; WAL mode keeps the two connections from
// blocking each other.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens or creates the search log database at dbPath.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS search_log (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		result_count INTEGER NOT NULL,
		clicked_tip_id INTEGER,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_search_log_query ON search_log(query);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

// LogSearch writes one search log row. Queries are stored lowercased and
// trimmed so frequency aggregation groups case variants together.
func (r *SQLiteRecorder) LogSearch(ctx context.Context, query string, resultCount, clickedTipID int) error {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var clicked interface{}
	if clickedTipID > 0 {
		clicked = clickedTipID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO search_log (id, query, result_count, clicked_tip_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), query, resultCount, clicked, time.Now(),
	)
	return err
}

// TopQueries returns the most frequently logged queries, most frequent
// first, ties broken lexicographically.
func (r *SQLiteRecorder) TopQueries(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT query FROM search_log
		 GROUP BY query
		 ORDER BY COUNT(*) DESC, query ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
