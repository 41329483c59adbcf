package export

import "github.com/klarsync/order-export/internal/domain"

// Exportable reports whether an order should be sent to Klar. Only
// orders that are paid for (processing or complete) or placed with bank
// transfer are eligible; everything else risks a double send once the
// payment settles.
func Exportable(order domain.Order) bool {
	return order.State == domain.OrderStateProcessing ||
		order.State == domain.OrderStateComplete ||
		order.PaymentMethod == domain.PaymentMethodBankTransfer
}
