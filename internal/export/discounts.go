package export

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/logger"
)

// specialPriceTolerance absorbs rounding drift when deciding whether a
// residual discount is worth surfacing.
const specialPriceTolerance = 0.02

// LineItemDiscountsBuilder derives the discount breakdown for one order
// line, reconciling rule-attributed discounts against the residual
// special-price discount.
type LineItemDiscountsBuilder struct {
	rules   RuleRepository
	coupons CouponResolver
	logger  *zap.Logger
}

// NewLineItemDiscountsBuilder creates a new discounts builder.
func NewLineItemDiscountsBuilder(rules RuleRepository, coupons CouponResolver) *LineItemDiscountsBuilder {
	return &LineItemDiscountsBuilder{
		rules:   rules,
		coupons: coupons,
		logger:  logger.Log,
	}
}

// BuildFromSalesOrderItem builds the discount breakdown for an order
// item. Amounts are per unit. Lookup failures degrade to a skipped
// rule; this method never fails.
func (b *LineItemDiscountsBuilder) BuildFromSalesOrderItem(ctx context.Context, item domain.OrderItem) []Discount {
	discounts := []Discount{}

	quantity := item.QtyOrdered
	if quantity <= 0 {
		quantity = 1
	}

	discountAmount := item.DiscountAmount / quantity

	// Free (100%-off) items carry an unreliable discount field; treat
	// the full original line total as the discount instead.
	if item.PriceInclTax == 0.0 {
		discountAmount = item.OriginalPrice * quantity
	}

	if discountAmount != 0 && item.AppliedRuleIDs != "" {
		for _, raw := range strings.Split(item.AppliedRuleIDs, ",") {
			ruleID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				continue
			}

			discount, ok := b.buildRuleDiscount(ctx, ruleID, item.PriceInclTax, quantity)
			if !ok {
				continue
			}

			discounts = append(discounts, discount)

			if discount.DiscountAmount > 0 {
				discountAmount -= discount.DiscountAmount
			}
		}
	}

	if discountAmount > specialPriceTolerance {
		discounts = append(discounts, Discount{
			Title:          SpecialPriceDiscountTitle,
			Descriptor:     SpecialPriceDiscountDescriptor,
			DiscountAmount: discountAmount,
		})
	}

	return discounts
}

// buildRuleDiscount attributes a per-unit discount amount to a single
// sales rule. Only specific-coupon rules with a percent or fixed action
// can be isolated to one line; everything else reports ok=false.
func (b *LineItemDiscountsBuilder) buildRuleDiscount(ctx context.Context, ruleID int64, baseItemPrice float64, quantity float64) (Discount, bool) {
	rule, err := b.rules.GetByID(ctx, ruleID)
	if err != nil {
		// Rule doesn't exist, manual calculation is not possible.
		b.logger.Debug("sales rule lookup failed, skipping",
			zap.Int64("rule_id", ruleID),
			zap.Error(err))
		return Discount{}, false
	}

	if rule.DiscountAmount == 0 {
		return Discount{}, false
	}

	if rule.CouponType != domain.CouponTypeSpecificCoupon {
		return Discount{}, false
	}

	couponCode, err := b.coupons.RuleCouponCode(ctx, ruleID)
	if err != nil {
		b.logger.Debug("coupon code lookup failed, skipping rule",
			zap.Int64("rule_id", ruleID),
			zap.Error(err))
		return Discount{}, false
	}

	var amount float64
	switch rule.SimpleAction {
	case domain.DiscountActionByPercent:
		amount = baseItemPrice * (rule.DiscountAmount / 100)
	case domain.DiscountActionFixedAmount:
		amount = rule.DiscountAmount
	default:
		// Disallow other action types.
		return Discount{}, false
	}

	if amount > 0 {
		amount /= quantity
	}

	return Discount{
		Title:          rule.Name,
		Descriptor:     rule.Description,
		IsVoucher:      true,
		VoucherCode:    couponCode,
		DiscountAmount: amount,
	}, true
}
