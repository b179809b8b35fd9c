package storage

import (
	"context"

	"airbnb-rooms-scraper/models"
)

// Sink persists the result of one run
type Sink interface {
	Save(ctx context.Context, runID string, result *models.BatchResult) error
	Close() error
}
