// models/order_status.go
package models

// OrderStatus is one named position in the fixed order lifecycle.
// "Ready for Pickup" and "Out for Delivery" are the same lifecycle position
// rendered under two labels; services/lifecycle resolves the label from the
// delivery mode.
type OrderStatus string

const (
	OrderStatusAwaitingETransfer OrderStatus = "Awaiting e-Transfer"
	OrderStatusPaymentReceived   OrderStatus = "Payment Received"
	OrderStatusDesignConfirmed   OrderStatus = "Design Confirmed"
	OrderStatusInPreparation     OrderStatus = "In Preparation"
	OrderStatusReadyForPickup    OrderStatus = "Ready for Pickup"
	OrderStatusOutForDelivery    OrderStatus = "Out for Delivery"
	OrderStatusCompleted         OrderStatus = "Completed"
	OrderStatusCancelled         OrderStatus = "Cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusAwaitingETransfer, OrderStatusPaymentReceived,
		OrderStatusDesignConfirmed, OrderStatusInPreparation,
		OrderStatusReadyForPickup, OrderStatusOutForDelivery,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status is absorbing.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}
