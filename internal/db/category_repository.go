package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/export"
)

// CategoryRepository resolves catalog categories from the platform's
// category tree.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Get loads a category by id. Returns export.ErrNotFound when the
// category does not exist.
func (r *CategoryRepository) Get(ctx context.Context, categoryID int64) (*domain.Category, error) {
	const query = `
		SELECT entity_id, name, level
		FROM catalog_category
		WHERE entity_id = $1`

	var category domain.Category
	err := r.pool.QueryRow(ctx, query, categoryID).Scan(
		&category.ID,
		&category.Name,
		&category.Level,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(export.ErrNotFound, "category %d", categoryID)
		}
		return nil, errors.Wrapf(err, "failed to load category %d", categoryID)
	}

	return &category, nil
}
