package models

// CartLine is one purchasable line in the session cart or inside a placed
// order. Exactly one of ProductID/ComboID is set for catalog items; a line
// created from an approved custom cake request carries CustomRequestID.
type CartLine struct {
	ProductID       string  `json:"product_id,omitempty"`
	ComboID         string  `json:"combo_id,omitempty"`
	Title           string  `json:"title"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	SelectedSize    string  `json:"selected_size,omitempty"`
	CustomRequestID string  `json:"custom_request_id,omitempty"`
}

// IsCustom reports whether the line was produced from a custom cake request.
func (l CartLine) IsCustom() bool {
	return l.CustomRequestID != ""
}

type CartUpdate struct {
	ProductID string `json:"product_id"`
	ComboID   string `json:"combo_id"`
	Size      string `json:"size"`
	Action    string `json:"action"` // "more" or "remove"
}

type CartPromoRequest struct {
	Code string `json:"code"`
}

type CartDeliveryModeRequest struct {
	Mode DeliveryMode `json:"mode"`
}

type CartResponse struct {
	Items               []CartLine     `json:"items"`
	DeliveryMode        DeliveryMode   `json:"delivery_mode"`
	PromoCode           string         `json:"promo_code,omitempty"`
	PromoName           string         `json:"promo_name,omitempty"`
	RegistrationPercent float64        `json:"registration_percent"`
	Breakdown           PriceBreakdown `json:"breakdown"`
}
