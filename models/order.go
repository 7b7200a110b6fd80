package models

import "time"

type DeliveryMode string

const (
	DeliveryModePickup   DeliveryMode = "pickup"
	DeliveryModeDelivery DeliveryMode = "delivery"
)

func (m DeliveryMode) IsValid() bool {
	return m == DeliveryModePickup || m == DeliveryModeDelivery
}

// PaymentState tracks the manual e-Transfer confirmation. Payments are
// confirmed out-of-band by an admin, there is no gateway involved.
type PaymentState string

const (
	PaymentStateAwaiting PaymentState = "awaiting"
	PaymentStateReceived PaymentState = "received"
)

type Order struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customer_name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number"`
	DeliveryMode DeliveryMode `json:"delivery_mode"`
	Street       string       `json:"street,omitempty"`
	City         string       `json:"city,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Notes        string       `json:"notes,omitempty"`

	Status       OrderStatus  `json:"status"`
	PaymentState PaymentState `json:"payment_state"`

	Items     []CartLine           `json:"items"`
	PromoCode string               `json:"promo_code,omitempty"`
	Breakdown PriceBreakdown       `json:"breakdown"`
	Timeline  []OrderTimelineEntry `json:"timeline"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderTimelineEntry is one recorded stage in the order's status history.
// The history doubles as the compatibility source for orders whose stored
// status predates the current stage vocabulary.
type OrderTimelineEntry struct {
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// HasCustomItem reports whether any line carries a custom cake request,
// which inserts the Design Confirmed stage into the lifecycle.
func (o *Order) HasCustomItem() bool {
	for _, item := range o.Items {
		if item.IsCustom() {
			return true
		}
	}
	return false
}

type OrderStatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
