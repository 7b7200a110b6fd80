package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sweetcrumb-bakery-api/models"
)

func (c *Connection) CreateCustomRequest(r *models.CustomCakeRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO custom_requests (
            id, name, email, phone_number, occasion, size, flavor,
            message_on_cake, design_notes, image_url, needed_by,
            status, quote_amount, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NOW())
    `

	_, err := c.db.ExecContext(ctx, query,
		r.ID, r.Name, r.Email, r.PhoneNumber, r.Occasion, r.Size, r.Flavor,
		r.MessageOnCake, r.DesignNotes, r.ImageURL, nullString(r.NeededBy),
		string(r.Status),
	)
	if err != nil {
		return fmt.Errorf("error creating custom request: %v", err)
	}
	return nil
}

func (c *Connection) GetCustomRequestByID(id string) (*models.CustomCakeRequest, error) {
	query := `
        SELECT id, name, email, phone_number, occasion, size, flavor,
               COALESCE(message_on_cake, ''), COALESCE(design_notes, ''),
               COALESCE(image_url, ''), COALESCE(needed_by, ''),
               status, quote_amount, created_at
        FROM custom_requests
        WHERE id = ?
    `

	var r models.CustomCakeRequest
	var status string
	err := c.db.QueryRow(query, id).Scan(
		&r.ID, &r.Name, &r.Email, &r.PhoneNumber, &r.Occasion, &r.Size,
		&r.Flavor, &r.MessageOnCake, &r.DesignNotes, &r.ImageURL, &r.NeededBy,
		&status, &r.QuoteAmount, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = models.RequestStatus(status)
	return &r, nil
}

func (c *Connection) GetCustomRequests(statusFilter models.RequestStatus) ([]*models.CustomCakeRequest, error) {
	query := `SELECT id FROM custom_requests`
	var args []interface{}
	if statusFilter != "" {
		query += ` WHERE status = ?`
		args = append(args, string(statusFilter))
	}
	query += ` ORDER BY created_at DESC LIMIT 200`

	return c.loadRequestsByQuery(query, args...)
}

func (c *Connection) GetCustomRequestsByEmail(email string) ([]*models.CustomCakeRequest, error) {
	query := `SELECT id FROM custom_requests WHERE email = ? ORDER BY created_at DESC LIMIT 100`
	return c.loadRequestsByQuery(query, email)
}

func (c *Connection) loadRequestsByQuery(query string, args ...interface{}) ([]*models.CustomCakeRequest, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing custom requests: %v", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	requests := make([]*models.CustomCakeRequest, 0, len(ids))
	for _, id := range ids {
		request, err := c.GetCustomRequestByID(id)
		if err != nil {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// UpdateCustomRequestStatus writes the new status, persisting the quote
// amount when one is supplied with the transition.
func (c *Connection) UpdateCustomRequestStatus(id string, status models.RequestStatus, quoteAmount float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var result sql.Result
	var err error
	if quoteAmount > 0 {
		result, err = c.db.ExecContext(ctx,
			`UPDATE custom_requests SET status = ?, quote_amount = ? WHERE id = ?`,
			string(status), quoteAmount, id)
	} else {
		result, err = c.db.ExecContext(ctx,
			`UPDATE custom_requests SET status = ? WHERE id = ?`,
			string(status), id)
	}
	if err != nil {
		return fmt.Errorf("error updating custom request status: %v", err)
	}
	return requireRowAffected(result)
}
