package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/export"
)

// SalesRuleRepository resolves sales rules and their primary coupon
// codes from the platform's promotion tables.
type SalesRuleRepository struct {
	pool *pgxpool.Pool
}

// NewSalesRuleRepository creates a new sales rule repository.
func NewSalesRuleRepository(pool *pgxpool.Pool) *SalesRuleRepository {
	return &SalesRuleRepository{pool: pool}
}

// GetByID loads a sales rule by id. Returns export.ErrNotFound when the
// rule does not exist.
func (r *SalesRuleRepository) GetByID(ctx context.Context, ruleID int64) (*domain.SalesRule, error) {
	const query = `
		SELECT rule_id, name, COALESCE(description, ''), discount_amount, simple_action, coupon_type
		FROM salesrule
		WHERE rule_id = $1`

	var rule domain.SalesRule
	err := r.pool.QueryRow(ctx, query, ruleID).Scan(
		&rule.ID,
		&rule.Name,
		&rule.Description,
		&rule.DiscountAmount,
		&rule.SimpleAction,
		&rule.CouponType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(export.ErrNotFound, "sales rule %d", ruleID)
		}
		return nil, errors.Wrapf(err, "failed to load sales rule %d", ruleID)
	}

	return &rule, nil
}

// RuleCouponCode loads the primary coupon code attached to a rule.
// Returns export.ErrNotFound when the rule has no coupon.
func (r *SalesRuleRepository) RuleCouponCode(ctx context.Context, ruleID int64) (string, error) {
	const query = `
		SELECT code
		FROM salesrule_coupon
		WHERE rule_id = $1 AND is_primary = TRUE`

	var code string
	err := r.pool.QueryRow(ctx, query, ruleID).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errors.Wrapf(export.ErrNotFound, "coupon for rule %d", ruleID)
		}
		return "", errors.Wrapf(err, "failed to load coupon for rule %d", ruleID)
	}

	return code, nil
}
