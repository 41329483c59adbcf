package db

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/export"
)

// OrderRepository loads orders with their items and the catalog data
// the line-item builder needs.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetByID loads an order and its items. Returns export.ErrNotFound when
// the order does not exist. Missing products on items are left nil; the
// builders treat them as optional.
func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	// The payment method comes from a correlated subquery: joining
	// sales_order_payment directly would duplicate the order row when
	// an order carries more than one payment record.
	const orderQuery = `
		SELECT o.entity_id, o.state, COALESCE((
			SELECT p.method
			FROM sales_order_payment p
			WHERE p.parent_id = o.entity_id
			ORDER BY p.entity_id
			LIMIT 1
		), '')
		FROM sales_order o
		WHERE o.entity_id = $1`

	var order domain.Order
	err := r.pool.QueryRow(ctx, orderQuery, orderID).Scan(
		&order.ID,
		&order.State,
		&order.PaymentMethod,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(export.ErrNotFound, "order %d", orderID)
		}
		return nil, errors.Wrapf(err, "failed to load order %d", orderID)
	}

	items, err := r.orderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *OrderRepository) orderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const itemsQuery = `
		SELECT item_id, order_id, sku, name, product_id, qty_ordered,
			COALESCE(price_incl_tax, 0), COALESCE(original_price, 0),
			COALESCE(discount_amount, 0), COALESCE(tax_amount, 0),
			COALESCE(base_cost, 0), COALESCE(applied_rule_ids, ''),
			COALESCE(product_options, '{}')
		FROM sales_order_item
		WHERE order_id = $1
		ORDER BY item_id`

	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load items for order %d", orderID)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item       domain.OrderItem
			rawOptions []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.SKU,
			&item.Name,
			&item.ProductID,
			&item.QtyOrdered,
			&item.PriceInclTax,
			&item.OriginalPrice,
			&item.DiscountAmount,
			&item.TaxAmount,
			&item.BaseCost,
			&item.AppliedRuleIDs,
			&rawOptions,
		); err != nil {
			return nil, errors.Wrapf(err, "failed to scan item for order %d", orderID)
		}

		if err := json.Unmarshal(rawOptions, &item.ProductOptions); err != nil {
			// Malformed options only cost the variant resolution.
			item.ProductOptions = nil
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read items for order %d", orderID)
	}

	for i := range items {
		product, err := r.product(ctx, items[i].ProductID)
		if err != nil {
			if errors.Is(err, export.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items[i].Product = product
	}

	return items, nil
}

func (r *OrderRepository) product(ctx context.Context, productID int64) (*domain.Product, error) {
	const productQuery = `
		SELECT entity_id, COALESCE(weight, 0)
		FROM catalog_product
		WHERE entity_id = $1`

	var product domain.Product
	err := r.pool.QueryRow(ctx, productQuery, productID).Scan(
		&product.ID,
		&product.Weight,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(export.ErrNotFound, "product %d", productID)
		}
		return nil, errors.Wrapf(err, "failed to load product %d", productID)
	}

	const categoriesQuery = `
		SELECT category_id
		FROM catalog_category_product
		WHERE product_id = $1
		ORDER BY position, category_id`

	rows, err := r.pool.Query(ctx, categoriesQuery, productID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load categories for product %d", productID)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID int64
		if err := rows.Scan(&categoryID); err != nil {
			return nil, errors.Wrapf(err, "failed to scan category for product %d", productID)
		}
		product.CategoryIDs = append(product.CategoryIDs, categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read categories for product %d", productID)
	}

	return &product, nil
}
