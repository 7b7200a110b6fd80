package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sweetcrumb-bakery-api/models"
)

// GetOfferByCode looks up an active offer by code within its validity
// window. Codes are matched case-insensitively and stored uppercase.
func (c *Connection) GetOfferByCode(code string) (*models.Offer, error) {
	query := `
        SELECT id, code, name, percent, active, starts_at, ends_at, created_at
        FROM offers
        WHERE code = ? AND active = 1 AND deleted_at IS NULL
          AND (starts_at IS NULL OR starts_at <= NOW())
          AND (ends_at IS NULL OR ends_at >= NOW())
    `
	return scanOffer(c.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(code))))
}

func (c *Connection) GetOffers() ([]models.Offer, error) {
	query := `
        SELECT id, code, name, percent, active, starts_at, ends_at, created_at
        FROM offers
        WHERE deleted_at IS NULL
        ORDER BY created_at DESC
    `

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing offers: %v", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	return offers, rows.Err()
}

func scanOffer(row rowScanner) (*models.Offer, error) {
	var o models.Offer
	var startsAt, endsAt sql.NullTime
	err := row.Scan(&o.ID, &o.Code, &o.Name, &o.Percent, &o.Active,
		&startsAt, &endsAt, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if startsAt.Valid {
		o.StartsAt = &startsAt.Time
	}
	if endsAt.Valid {
		o.EndsAt = &endsAt.Time
	}
	return &o, nil
}

func (c *Connection) CreateOffer(o *models.Offer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO offers (id, code, name, percent, active, starts_at, ends_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
    `
	_, err := c.db.ExecContext(ctx, query, o.ID, strings.ToUpper(o.Code),
		o.Name, o.Percent, o.Active, o.StartsAt, o.EndsAt)
	if err != nil {
		return fmt.Errorf("error creating offer: %v", err)
	}
	return nil
}

func (c *Connection) UpdateOffer(o *models.Offer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        UPDATE offers
        SET code = ?, name = ?, percent = ?, active = ?, starts_at = ?, ends_at = ?
        WHERE id = ? AND deleted_at IS NULL
    `
	result, err := c.db.ExecContext(ctx, query, strings.ToUpper(o.Code),
		o.Name, o.Percent, o.Active, o.StartsAt, o.EndsAt, o.ID)
	if err != nil {
		return fmt.Errorf("error updating offer: %v", err)
	}
	return requireRowAffected(result)
}

func (c *Connection) DeleteOffer(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.db.ExecContext(ctx,
		`UPDATE offers SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error deleting offer: %v", err)
	}
	return requireRowAffected(result)
}
