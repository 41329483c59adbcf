package export

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/klarsync/order-export/internal/config"
	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/logger"
)

// lbsToKgsFactor converts pounds to kilograms.
const lbsToKgsFactor = 0.45359237

// LineItemsBuilder assembles one exported line-item record per order
// item, delegating the discount and tax breakdowns to their builders.
type LineItemsBuilder struct {
	categories CategoryRepository
	taxes      *TaxesBuilder
	discounts  *LineItemDiscountsBuilder
	cfg        *config.Config
	logger     *zap.Logger
}

// NewLineItemsBuilder creates a new line-items builder.
func NewLineItemsBuilder(
	categories CategoryRepository,
	taxes *TaxesBuilder,
	discounts *LineItemDiscountsBuilder,
	cfg *config.Config,
) *LineItemsBuilder {
	return &LineItemsBuilder{
		categories: categories,
		taxes:      taxes,
		discounts:  discounts,
		cfg:        cfg,
		logger:     logger.Log,
	}
}

// BuildFromSalesOrder builds the exported line items for an order.
// Missing products, categories, and variants are treated as optional
// and default to absent or zero; this method never fails.
func (b *LineItemsBuilder) BuildFromSalesOrder(ctx context.Context, order domain.Order) []LineItem {
	lineItems := make([]LineItem, 0, len(order.Items))

	for _, item := range order.Items {
		variantName, variantID := productVariant(item)
		categoryName := b.categoryName(ctx, item)

		discountAmount := item.DiscountAmount
		taxAmount := item.TaxAmount
		priceInclTax := item.OriginalPrice
		quantity := item.QtyOrdered

		if item.PriceInclTax == 0.0 {
			discountAmount = priceInclTax * quantity
		}

		totalBeforeTaxesAndDiscounts := priceInclTax * quantity
		totalAfterTaxesAndDiscounts := totalBeforeTaxesAndDiscounts - taxAmount - discountAmount

		var weightInGrams float64
		if item.Product != nil {
			weightInGrams = b.weightInGrams(item.Product)
		}

		lineItems = append(lineItems, LineItem{
			ID:                                 strconv.FormatInt(item.ID, 10),
			ProductName:                        item.Name,
			ProductID:                          strconv.FormatInt(item.ProductID, 10),
			ProductVariantName:                 variantName,
			ProductVariantID:                   variantID,
			ProductCollection:                  categoryName,
			ProductCogs:                        item.BaseCost,
			ProductGmv:                         priceInclTax,
			ProductShippingWeightInGrams:       weightInGrams,
			SKU:                                item.SKU,
			Quantity:                           quantity,
			Discounts:                          b.discounts.BuildFromSalesOrderItem(ctx, item),
			Taxes:                              b.taxes.Build(ctx, item.OrderID, &item, domain.TaxableItemTypeProduct),
			TotalAmountBeforeTaxesAndDiscounts: totalBeforeTaxesAndDiscounts,
			TotalAmountAfterTaxesAndDiscounts:  totalAfterTaxesAndDiscounts,
		})
	}

	return lineItems
}

// productVariant resolves the configurable-product child from the
// item's product options. Both option keys must be present.
func productVariant(item domain.OrderItem) (name, id string) {
	simpleName, hasName := item.ProductOptions[domain.ProductOptionSimpleName]
	simpleSKU, hasSKU := item.ProductOptions[domain.ProductOptionSimpleSKU]

	if hasName && hasSKU {
		return simpleName, simpleSKU
	}

	return "", ""
}

// categoryName resolves the most specific (deepest) category linked to
// the item's product. Among equal-depth categories the last one fetched
// wins. Unresolvable category ids are skipped.
func (b *LineItemsBuilder) categoryName(ctx context.Context, item domain.OrderItem) string {
	if item.Product == nil {
		return ""
	}

	var (
		name  string
		level = -1
	)

	for _, categoryID := range item.Product.CategoryIDs {
		category, err := b.categories.Get(ctx, categoryID)
		if err != nil {
			b.logger.Debug("category lookup failed, skipping",
				zap.Int64("category_id", categoryID),
				zap.Error(err))
			continue
		}

		if category.Level >= level {
			level = category.Level
			name = category.Name
		}
	}

	return name
}

// weightInGrams converts the product weight to grams. Weights stored in
// pounds are converted to kilograms, rounded to 3 decimals, before the
// gram conversion.
func (b *LineItemsBuilder) weightInGrams(product *domain.Product) float64 {
	if product.Weight == 0 {
		return 0
	}

	weightInKgs := product.Weight
	if b.cfg.WeightUnit == config.WeightUnitLbs {
		weightInKgs = convertLbsToKgs(product.Weight)
	}

	return weightInKgs * 1000
}

// convertLbsToKgs converts pounds to kilograms rounded to 3 decimals.
func convertLbsToKgs(weightLbs float64) float64 {
	return math.Round(weightLbs*lbsToKgsFactor*1000) / 1000
}
