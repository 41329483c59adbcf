package export

// Output records handed to the Klar serializer. Field names follow
// Klar's camelCase convention via the JSON tags; the structs themselves
// are transient and rebuilt on every export.

// Discount is one entry of a line item's discount breakdown. Amounts
// are per unit of the line.
type Discount struct {
	Title          string  `json:"title"`
	Descriptor     string  `json:"descriptor"`
	IsVoucher      bool    `json:"isVoucher"`
	VoucherCode    string  `json:"voucherCode,omitempty"`
	DiscountAmount float64 `json:"discountAmount"`
}

// Titles for the catch-all bucket holding discount amounts that cannot
// be attributed to a specific sales rule.
const (
	SpecialPriceDiscountTitle      = "Special price"
	SpecialPriceDiscountDescriptor = "Special price discount"
)

// Tax is one entry of a tax breakdown. TaxRate is a fraction, not a
// percent.
type Tax struct {
	Title     string  `json:"title"`
	TaxRate   float64 `json:"taxRate"`
	TaxAmount float64 `json:"taxAmount"`
}

// LineItem is one exported order line.
type LineItem struct {
	ID                                 string     `json:"id"`
	ProductName                        string     `json:"productName"`
	ProductID                          string     `json:"productId"`
	ProductVariantName                 string     `json:"productVariantName,omitempty"`
	ProductVariantID                   string     `json:"productVariantId,omitempty"`
	ProductCollection                  string     `json:"productCollection,omitempty"`
	ProductCogs                        float64    `json:"productCogs"`
	ProductGmv                         float64    `json:"productGmv"`
	ProductShippingWeightInGrams       float64    `json:"productShippingWeightInGrams"`
	SKU                                string     `json:"sku"`
	Quantity                           float64    `json:"quantity"`
	Discounts                          []Discount `json:"discounts"`
	Taxes                              []Tax      `json:"taxes"`
	TotalAmountBeforeTaxesAndDiscounts float64    `json:"totalAmountBeforeTaxesAndDiscounts"`
	TotalAmountAfterTaxesAndDiscounts  float64    `json:"totalAmountAfterTaxesAndDiscounts"`
}
