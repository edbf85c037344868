// Package catalog loads tip catalog files and imports them into storage.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bdbt/tipsearch/internal/models"
	"github.com/bdbt/tipsearch/internal/storage"
)

// Load parses a JSON catalog file containing an array of tips.
func Load(path string) ([]*models.Tip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var tips []*models.Tip
	if err := json.Unmarshal(data, &tips); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return tips, nil
}

// Import loads the catalog at path and upserts every tip into store.
// Tips without a positive id are skipped with a warning, matching the
// index's tolerance for partially-formed input. Returns the imported count.
func Import(ctx context.Context, store storage.Storage, path string, logger *zap.Logger) (int, error) {
	tips, err := Load(path)
	if err != nil {
		return 0, err
	}
	imported := 0
	for _, tip := range tips {
		if tip == nil || tip.ID <= 0 {
			if logger != nil {
				logger.Warn("skipping tip without id", zap.String("catalog", path))
			}
			continue
		}
		if err := store.UpsertTip(ctx, tip); err != nil {
			return imported, fmt.Errorf("failed to import tip %d: %w", tip.ID, err)
		}
		imported++
	}
	return imported, nil
}
