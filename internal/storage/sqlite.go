package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bdbt/tipsearch/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
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

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tips (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT,
		description TEXT,
		primary_benefit TEXT,
		secondary_benefit TEXT,
		tertiary_benefit TEXT,
		tags TEXT,
		category TEXT,
		difficulty TEXT,
		created_at TIMESTAMP,
		view_count INTEGER DEFAULT 0,
		rating REAL DEFAULT 0,
		is_featured INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_tips_category ON tips(category);
	CREATE INDEX IF NOT EXISTS idx_tips_created_at ON tips(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertTip inserts a tip or replaces the existing row with the same id.
func (s *SQLiteStorage) UpsertTip(ctx context.Context, tip *models.Tip) error {
	if tip.ID <= 0 {
		return fmt.Errorf("tip requires a positive id")
	}
	tagsJSON, err := json.Marshal(tip.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tips (id, title, subtitle, description, primary_benefit,
			secondary_benefit, tertiary_benefit, tags, category, difficulty,
			created_at, view_count, rating, is_featured)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			description = excluded.description,
			primary_benefit = excluded.primary_benefit,
			secondary_benefit = excluded.secondary_benefit,
			tertiary_benefit = excluded.tertiary_benefit,
			tags = excluded.tags,
			category = excluded.category,
			difficulty = excluded.difficulty,
			created_at = excluded.created_at,
			view_count = excluded.view_count,
			rating = excluded.rating,
			is_featured = excluded.is_featured`,
		tip.ID, tip.Title, tip.Subtitle, tip.Description, tip.PrimaryBenefit,
		tip.SecondaryBenefit, tip.TertiaryBenefit, string(tagsJSON),
		string(tip.Category), string(tip.Difficulty), tip.CreatedAt,
		tip.ViewCount, tip.Rating, tip.IsFeatured,
	)
	return err
}

// GetTip returns a tip by id.
func (s *SQLiteStorage) GetTip(ctx context.Context, id int) (*models.Tip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, subtitle, description, primary_benefit,
			secondary_benefit, tertiary_benefit, tags, category, difficulty,
			created_at, view_count, rating, is_featured
		 FROM tips WHERE id = ?`, id,
	)
	tip, err := scanTip(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tip not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return tip, nil
}

// DeleteTip removes a tip by id. Deleting a missing tip is not an error.
func (s *SQLiteStorage) DeleteTip(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tips WHERE id = ?`, id)
	return err
}

// ListTips returns the full catalog ordered by id.
func (s *SQLiteStorage) ListTips(ctx context.Context) ([]*models.Tip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, subtitle, description, primary_benefit,
			secondary_benefit, tertiary_benefit, tags, category, difficulty,
			created_at, view_count, rating, is_featured
		 FROM tips ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []*models.Tip
	for rows.Next() {
		tip, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	return tips, rows.Err()
}

// CountTips returns the number of tips in the catalog.
func (s *SQLiteStorage) CountTips(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tips`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTip(row scanner) (*models.Tip, error) {
	var (
		tip      models.Tip
		subtitle, description, primary, secondary, tertiary sql.NullString
		tagsJSON, category, difficulty                      sql.NullString
		createdAt                                           sql.NullTime
	)
	err := row.Scan(&tip.ID, &tip.Title, &subtitle, &description, &primary,
		&secondary, &tertiary, &tagsJSON, &category, &difficulty,
		&createdAt, &tip.ViewCount, &tip.Rating, &tip.IsFeatured)
	if err != nil {
		return nil, err
	}
	tip.Subtitle = subtitle.String
	tip.Description = description.String
	tip.PrimaryBenefit = primary.String
	tip.SecondaryBenefit = secondary.String
	tip.TertiaryBenefit = tertiary.String
	tip.Category = models.Category(category.String)
	tip.Difficulty = models.Difficulty(difficulty.String)
	if createdAt.Valid {
		tip.CreatedAt = createdAt.Time
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &tip.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &tip, nil
}
