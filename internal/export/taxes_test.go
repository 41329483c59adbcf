package export_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/export"
)

func TestTaxesBuilder_ProductTax(t *testing.T) {
	ctx := context.Background()

	taxItems := new(MockTaxItemRepository)
	taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).Return([]domain.TaxItem{
		{
			ItemID:          11,
			TaxableItemType: domain.TaxableItemTypeProduct,
			TaxPercent:      19,
			RealAmount:      38,
			Title:           "VAT 19%",
		},
		{
			ItemID:          12,
			TaxableItemType: domain.TaxableItemTypeProduct,
			TaxPercent:      19,
			RealAmount:      7,
			Title:           "VAT 19%",
		},
		{
			TaxableItemType: domain.TaxableItemTypeShipping,
			TaxPercent:      19,
			RealAmount:      0.95,
			Title:           "VAT 19%",
		},
	}, nil)

	builder := export.NewTaxesBuilder(taxItems)

	item := &domain.OrderItem{
		ID:            11,
		QtyOrdered:    1,
		OriginalPrice: 119,
	}

	taxes := builder.Build(ctx, 100, item, domain.TaxableItemTypeProduct)

	// Only the matching item's line survives; tax is extracted from the
	// tax-inclusive price: 119 - 119/1.19 = 19.
	assert.Len(t, taxes, 1)
	assert.Equal(t, "VAT 19%", taxes[0].Title)
	assert.InDelta(t, 0.19, taxes[0].TaxRate, 1e-9)
	assert.InDelta(t, 19.0, taxes[0].TaxAmount, 1e-9)
	taxItems.AssertExpectations(t)
}

func TestTaxesBuilder_DiscountReducesEffectivePrice(t *testing.T) {
	ctx := context.Background()

	taxItems := new(MockTaxItemRepository)
	taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).Return([]domain.TaxItem{
		{
			ItemID:          11,
			TaxableItemType: domain.TaxableItemTypeProduct,
			TaxPercent:      20,
			Title:           "VAT 20%",
		},
	}, nil)

	builder := export.NewTaxesBuilder(taxItems)

	item := &domain.OrderItem{
		ID:             11,
		QtyOrdered:     2,
		OriginalPrice:  60,
		DiscountAmount: 24,
	}

	taxes := builder.Build(ctx, 100, item, domain.TaxableItemTypeProduct)

	// Effective unit price 60 - 24/2 = 48; tax component 48 - 48/1.2 = 8.
	assert.Len(t, taxes, 1)
	assert.InDelta(t, 8.0, taxes[0].TaxAmount, 1e-9)

	// Round trip: extracted tax plus the net price restores the
	// tax-inclusive effective price.
	effectivePrice := 48.0
	assert.InDelta(t, effectivePrice, taxes[0].TaxAmount+effectivePrice/(1+taxes[0].TaxRate), 1e-9)
	taxItems.AssertExpectations(t)
}

func TestTaxesBuilder_ZeroQuantityDefaultsToOne(t *testing.T) {
	ctx := context.Background()

	taxItems := new(MockTaxItemRepository)
	taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).Return([]domain.TaxItem{
		{
			ItemID:          11,
			TaxableItemType: domain.TaxableItemTypeProduct,
			TaxPercent:      25,
			Title:           "VAT 25%",
		},
	}, nil)

	builder := export.NewTaxesBuilder(taxItems)

	item := &domain.OrderItem{
		ID:             11,
		QtyOrdered:     0,
		OriginalPrice:  125,
		DiscountAmount: 25,
	}

	taxes := builder.Build(ctx, 100, item, domain.TaxableItemTypeProduct)

	// Quantity falls back to 1: effective price 100, tax 100 - 100/1.25.
	assert.Len(t, taxes, 1)
	assert.InDelta(t, 20.0, taxes[0].TaxAmount, 1e-9)
	taxItems.AssertExpectations(t)
}

func TestTaxesBuilder_FractionalQuantity(t *testing.T) {
	ctx := context.Background()

	taxItems := new(MockTaxItemRepository)
	taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).Return([]domain.TaxItem{
		{
			ItemID:          11,
			TaxableItemType: domain.TaxableItemTypeProduct,
			TaxPercent:      20,
			Title:           "VAT 20%",
		},
	}, nil)

	builder := export.NewTaxesBuilder(taxItems)

	item := &domain.OrderItem{
		ID:             11,
		QtyOrdered:     2.5,
		OriginalPrice:  60,
		DiscountAmount: 25,
	}

	taxes := builder.Build(ctx, 100, item, domain.TaxableItemTypeProduct)

	// Weight-sold lines keep their fractional quantity: effective unit
	// price 60 - 25/2.5 = 50, tax component 50 - 50/1.2.
	assert.Len(t, taxes, 1)
	assert.InDelta(t, 50.0-50.0/1.2, taxes[0].TaxAmount, 1e-9)
	taxItems.AssertExpectations(t)
}

func TestTaxesBuilder_ShippingTax(t *testing.T) {
	ctx := context.Background()

	taxItems := new(MockTaxItemRepository)
	taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).Return([]domain.TaxItem{
		{
			ItemID:          11,
			TaxableItemType: domain.TaxableItemTypeProduct,
			TaxPercent:      19,
			RealAmount:      38,
			Title:           "VAT 19%",
		},
		{
			TaxableItemType: domain.TaxableItemTypeShipping,
			TaxPercent:      19,
			RealAmount:      0.95,
			Title:           "Shipping VAT",
		},
	}, nil)

	builder := export.NewTaxesBuilder(taxItems)

	taxes := builder.Build(ctx, 100, nil, domain.TaxableItemTypeShipping)

	// Shipping tax is a discrete stored value, passed through as is.
	assert.Equal(t, []export.Tax{
		{
			Title:     "Shipping VAT",
			TaxRate:   0.19,
			TaxAmount: 0.95,
		},
	}, taxes)
	taxItems.AssertExpectations(t)
}

func TestTaxesBuilder_EmptyAndFailedLookups(t *testing.T) {
	ctx := context.Background()

	t.Run("no tax lines", func(t *testing.T) {
		taxItems := new(MockTaxItemRepository)
		taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).
			Return([]domain.TaxItem{}, nil)

		builder := export.NewTaxesBuilder(taxItems)

		taxes := builder.Build(ctx, 100, nil, domain.TaxableItemTypeProduct)
		assert.NotNil(t, taxes)
		assert.Empty(t, taxes)
	})

	t.Run("lookup failure degrades to empty breakdown", func(t *testing.T) {
		taxItems := new(MockTaxItemRepository)
		taxItems.On("GetTaxItemsByOrderID", mock.Anything, int64(100)).
			Return(nil, errors.New("connection reset"))

		builder := export.NewTaxesBuilder(taxItems)

		taxes := builder.Build(ctx, 100, nil, domain.TaxableItemTypeProduct)
		assert.NotNil(t, taxes)
		assert.Empty(t, taxes)
	})
}
