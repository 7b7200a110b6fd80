package models

// CheckoutRequest is the checkout submission. The cart itself lives in the
// cookie session; the server re-prices everything from the catalog before
// persisting, client-side totals are never trusted.
type CheckoutRequest struct {
	CustomerName string       `json:"customer_name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phoneNumber"`
	DeliveryMode DeliveryMode `json:"delivery_mode"`
	Street       string       `json:"street"`
	City         string       `json:"city"`
	PostalCode   string       `json:"postal_code"`
	Notes        string       `json:"notes"`
}

// CheckoutResponse returns the persisted order id plus the server-computed
// breakdown so the confirmation page can render it without a second fetch.
type CheckoutResponse struct {
	OrderID   string         `json:"order_id"`
	Status    OrderStatus    `json:"status"`
	Breakdown PriceBreakdown `json:"breakdown"`
}
