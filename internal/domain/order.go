package domain

// Order represents a placed order as materialized by the host commerce
// platform. All fields are read-only from the export subsystem's
// perspective.
type Order struct {
	ID            int64
	State         string
	PaymentMethod string
	Items         []OrderItem
}

// Order states relevant to export eligibility.
const (
	OrderStateProcessing = "processing"
	OrderStateComplete   = "complete"
)

// PaymentMethodBankTransfer is the offline bank-transfer payment code.
const PaymentMethodBankTransfer = "banktransfer"

// OrderItem is a single order line. DiscountAmount and TaxAmount are
// order-line aggregates (not per-unit); AppliedRuleIDs is the
// comma-separated rule id list the platform stores on the line.
// QtyOrdered is a decimal on the platform side; fractional quantities
// occur for weight-sold products.
type OrderItem struct {
	ID             int64
	OrderID        int64
	SKU            string
	Name           string
	ProductID      int64
	QtyOrdered     float64
	PriceInclTax   float64
	OriginalPrice  float64
	DiscountAmount float64
	TaxAmount      float64
	BaseCost       float64
	AppliedRuleIDs string
	ProductOptions map[string]string
	Product        *Product
}

// Product option keys set by the platform for configurable-product
// children.
const (
	ProductOptionSimpleName = "simple_name"
	ProductOptionSimpleSKU  = "simple_sku"
)
