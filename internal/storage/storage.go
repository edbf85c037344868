// Package storage provides persistence for the tip catalog.
package storage

import (
	"context"

	"github.com/bdbt/tipsearch/internal/models"
)

// Storage defines tip catalog persistence operations. The search engine
// treats it as the document source: the index is rebuilt from ListTips.
type Storage interface {
	UpsertTip(ctx context.Context, tip *models.Tip) error
	GetTip(ctx context.Context, id int) (*models.Tip, error)
	DeleteTip(ctx context.Context, id int) error
	ListTips(ctx context.Context) ([]*models.Tip, error)
	CountTips(ctx context.Context) (int, error)
	Close() error
}
