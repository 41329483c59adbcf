package domain

// TaxItem is one tax line recorded against an order, keyed by the
// taxable item it applies to.
type TaxItem struct {
	ItemID          int64
	TaxableItemType string
	TaxPercent      float64
	RealAmount      float64
	Title           string
}

// Taxable item types stored on tax lines.
const (
	TaxableItemTypeProduct  = "product"
	TaxableItemTypeShipping = "shipping"
)
