package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/logger"
)

// TaxesBuilder derives the tax breakdown for a line item or shipping
// charge from the raw tax lines recorded on the order.
type TaxesBuilder struct {
	taxItems TaxItemRepository
	logger   *zap.Logger
}

// NewTaxesBuilder creates a new taxes builder.
func NewTaxesBuilder(taxItems TaxItemRepository) *TaxesBuilder {
	return &TaxesBuilder{
		taxItems: taxItems,
		logger:   logger.Log,
	}
}

// Build returns the taxes of the given taxable type for an order.
//
// Product tax generally isn't stored per item (only an order-level tax
// line exists), so when an item is supplied its tax amount is
// back-computed from the tax-inclusive unit price and the rate.
// Shipping tax is already a discrete stored value and passes through.
func (b *TaxesBuilder) Build(ctx context.Context, orderID int64, item *domain.OrderItem, taxableItemType string) []Tax {
	grouped := make(map[string][]Tax)

	taxItems, err := b.taxItems.GetTaxItemsByOrderID(ctx, orderID)
	if err != nil {
		b.logger.Warn("tax item lookup failed, emitting empty breakdown",
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return []Tax{}
	}

	for _, taxItem := range taxItems {
		taxRate := taxItem.TaxPercent / 100

		var taxAmount float64
		if taxItem.TaxableItemType == domain.TaxableItemTypeProduct && item != nil {
			if taxItem.ItemID != item.ID {
				continue
			}

			qty := item.QtyOrdered
			if qty == 0 {
				qty = 1
			}

			// Extract the tax component from the tax-inclusive
			// effective unit price.
			itemPrice := item.OriginalPrice - item.DiscountAmount/qty
			taxAmount = itemPrice - itemPrice/(1+taxRate)
		} else {
			taxAmount = taxItem.RealAmount
		}

		if taxItem.TaxableItemType == taxableItemType {
			grouped[taxableItemType] = append(grouped[taxableItemType], Tax{
				Title:     taxItem.Title,
				TaxRate:   taxRate,
				TaxAmount: taxAmount,
			})
		}
	}

	if group := grouped[taxableItemType]; group != nil {
		return group
	}

	return []Tax{}
}
