package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/klarsync/order-export/internal/domain"
)

// TaxItemRepository returns the tax lines recorded against an order.
type TaxItemRepository struct {
	pool *pgxpool.Pool
}

// NewTaxItemRepository creates a new tax item repository.
func NewTaxItemRepository(pool *pgxpool.Pool) *TaxItemRepository {
	return &TaxItemRepository{pool: pool}
}

// GetTaxItemsByOrderID loads all tax lines for an order. An order with
// no tax lines yields an empty slice, not an error.
func (r *TaxItemRepository) GetTaxItemsByOrderID(ctx context.Context, orderID int64) ([]domain.TaxItem, error) {
	const query = `
		SELECT COALESCE(ti.item_id, 0), ti.taxable_item_type, ti.tax_percent, ti.real_amount, t.title
		FROM sales_order_tax t
		JOIN sales_order_tax_item ti ON ti.tax_id = t.tax_id
		WHERE t.order_id = $1
		ORDER BY ti.tax_item_id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load tax items for order %d", orderID)
	}
	defer rows.Close()

	var taxItems []domain.TaxItem
	for rows.Next() {
		var taxItem domain.TaxItem
		if err := rows.Scan(
			&taxItem.ItemID,
			&taxItem.TaxableItemType,
			&taxItem.TaxPercent,
			&taxItem.RealAmount,
			&taxItem.Title,
		); err != nil {
			return nil, errors.Wrapf(err, "failed to scan tax item for order %d", orderID)
		}
		taxItems = append(taxItems, taxItem)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read tax items for order %d", orderID)
	}

	return taxItems, nil
}
