package repository

import (
	"context"

	"compliance-prefilter/internal/domain/entity"
)

// ClassificationRepository persists the rows of one run.
// SaveAll either stores every row or nothing.
type ClassificationRepository interface {
	SaveAll(ctx context.Context, rows []entity.Classification) error
}
