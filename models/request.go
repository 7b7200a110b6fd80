package models

import "time"

// CustomCakeRequest is a public custom cake intake submission. It advances
// through its own lifecycle via admin actions; a positive quote is required
// before the request can move from pending to quoted.
type CustomCakeRequest struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phone_number"`
	Occasion      string        `json:"occasion"`
	Size          string        `json:"size"`
	Flavor        string        `json:"flavor"`
	MessageOnCake string        `json:"message_on_cake,omitempty"`
	DesignNotes   string        `json:"design_notes,omitempty"`
	ImageURL      string        `json:"image_url,omitempty"`
	NeededBy      string        `json:"needed_by,omitempty"`
	Status        RequestStatus `json:"status"`
	QuoteAmount   float64       `json:"quote_amount"`
	CreatedAt     time.Time     `json:"created_at"`
}

type RequestStatusUpdateRequest struct {
	Status      RequestStatus `json:"status"`
	QuoteAmount float64       `json:"quote_amount,omitempty"`
}
