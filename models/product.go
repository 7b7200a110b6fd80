package models

import "time"

// ProductSize is one selectable size with its own price, stored as a JSON
// array on the product row.
type ProductSize struct {
	Label string  `json:"label"` // e.g. "8 inch"
	Price float64 `json:"price"`
}

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Category    string        `json:"category"`
	BasePrice   float64       `json:"base_price"`
	Sizes       []ProductSize `json:"sizes,omitempty"`
	Active      bool          `json:"active"`
	CreatedAt   time.Time     `json:"created_at"`
}

// PriceForSize resolves the unit price for a selected size, falling back to
// the base price when the size is empty or unknown.
func (p *Product) PriceForSize(size string) float64 {
	if size == "" {
		return p.BasePrice
	}
	for _, s := range p.Sizes {
		if s.Label == size {
			return s.Price
		}
	}
	return p.BasePrice
}

type ProductUpsertRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Category    string        `json:"category"`
	BasePrice   float64       `json:"base_price"`
	Sizes       []ProductSize `json:"sizes"`
	Active      *bool         `json:"active"`
}
