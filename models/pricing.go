package models

// PriceBreakdown is the fully itemized derived pricing for a cart or order.
// Every intermediate value is kept because the storefront renders each line
// of the breakdown separately.
type PriceBreakdown struct {
	Subtotal                   float64 `json:"subtotal"`
	RegistrationDiscountAmount float64 `json:"registration_discount"`
	PromoDiscountAmount        float64 `json:"promo_discount"`
	TaxableAmount              float64 `json:"taxable_amount"`
	Tax                        float64 `json:"tax"`
	DeliveryFee                float64 `json:"delivery_fee"`
	Total                      float64 `json:"total"`
}
