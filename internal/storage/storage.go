// Package storage defines the persistence interface for benchmark runs.
package storage

import (
	"context"

	"github.com/4zj9/pairbench/internal/models"
)

// Storage defines benchmark-run persistence operations.
type Storage interface {
	SaveRun(ctx context.Context, run *models.Run) error
	GetRun(ctx context.Context, id string) (*models.Run, error)
	ListRuns(ctx context.Context, offset, limit int) ([]*models.Run, error)
	DeleteRun(ctx context.Context, id string) error
	CountRuns(ctx context.Context) (int64, error)

	Close() error
}
