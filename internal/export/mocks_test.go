package export_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/klarsync/order-export/internal/domain"
	"github.com/klarsync/order-export/internal/logger"
)

func init() {
	logger.InitLogger("test")
}

// MockRuleRepository provides a mock for the sales rule lookup
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) GetByID(ctx context.Context, ruleID int64) (*domain.SalesRule, error) {
	args := m.Called(ctx, ruleID)
	if rule, ok := args.Get(0).(*domain.SalesRule); ok {
		return rule, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCouponResolver provides a mock for the coupon code lookup
type MockCouponResolver struct {
	mock.Mock
}

func (m *MockCouponResolver) RuleCouponCode(ctx context.Context, ruleID int64) (string, error) {
	args := m.Called(ctx, ruleID)
	return args.String(0), args.Error(1)
}

// MockCategoryRepository provides a mock for the category lookup
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Get(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if category, ok := args.Get(0).(*domain.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTaxItemRepository provides a mock for the tax line lookup
type MockTaxItemRepository struct {
	mock.Mock
}

func (m *MockTaxItemRepository) GetTaxItemsByOrderID(ctx context.Context, orderID int64) ([]domain.TaxItem, error) {
	args := m.Called(ctx, orderID)
	if taxItems, ok := args.Get(0).([]domain.TaxItem); ok {
		return taxItems, args.Error(1)
	}
	return nil, args.Error(1)
}
