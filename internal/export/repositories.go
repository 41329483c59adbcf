package export

import (
	"context"

	"github.com/pkg/errors"

	"github.com/klarsync/order-export/internal/domain"
)

// ErrNotFound is returned by lookups when the referenced entity does not
// exist. Builders treat it the same as any other lookup failure: skip
// the contributing entry and continue.
var ErrNotFound = errors.New("entity not found")

// RuleRepository resolves sales rules by id.
type RuleRepository interface {
	GetByID(ctx context.Context, ruleID int64) (*domain.SalesRule, error)
}

// CouponResolver loads the coupon code attached to a specific-coupon
// rule.
type CouponResolver interface {
	RuleCouponCode(ctx context.Context, ruleID int64) (string, error)
}

// CategoryRepository resolves catalog categories by id.
type CategoryRepository interface {
	Get(ctx context.Context, categoryID int64) (*domain.Category, error)
}

// TaxItemRepository returns all tax lines recorded for an order.
type TaxItemRepository interface {
	GetTaxItemsByOrderID(ctx context.Context, orderID int64) ([]domain.TaxItem, error)
}

// OrderRepository loads orders with their items for the preview API.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
}
