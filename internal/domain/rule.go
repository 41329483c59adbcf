package domain

// SalesRule is a promotion rule defined on the host platform, optionally
// tied to a coupon code.
type SalesRule struct {
	ID             int64
	Name           string
	Description    string
	DiscountAmount float64
	SimpleAction   string
	CouponType     string
}

// Discount action kinds. Any other action cannot be attributed to a
// single line and is skipped.
const (
	DiscountActionByPercent   = "by_percent"
	DiscountActionFixedAmount = "by_fixed"
)

// Coupon types. Only specific-coupon rules carry a loadable code.
const (
	CouponTypeNoCoupon       = "no_coupon"
	CouponTypeSpecificCoupon = "specific_coupon"
	CouponTypeAutoGenerated  = "auto_generated"
)
