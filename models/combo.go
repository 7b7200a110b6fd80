package models

import "time"

// ComboItem is one entry of a bundled combo, stored as a JSON array on the
// combo row.
type ComboItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Combo is a bundled set of bakery items sold at a single price.
type Combo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Price       float64     `json:"price"`
	Items       []ComboItem `json:"items,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
}

type ComboUpsertRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Price       float64     `json:"price"`
	Items       []ComboItem `json:"items"`
	Active      *bool       `json:"active"`
}
