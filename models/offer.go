package models

import "time"

// Offer is a promotional percent-off code validated by the backend. The
// percentage is applied to the cart subtotal independently of the
// registration discount.
type Offer struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Percent   float64    `json:"percent"`
	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type OfferValidateRequest struct {
	Code string `json:"code"`
}

// OfferValidation is the response for a successfully validated promo code.
type OfferValidation struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

type OfferUpsertRequest struct {
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	Percent  float64    `json:"percent"`
	Active   *bool      `json:"active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}
