package database

import (
	"context"
	"fmt"
	"time"

	"sweetcrumb-bakery-api/models"
)

func (c *Connection) CreateReview(r *models.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO reviews (id, name, rating, comment, approved, created_at)
        VALUES (?, ?, ?, ?, 0, NOW())
    `
	_, err := c.db.ExecContext(ctx, query, r.ID, r.Name, r.Rating, r.Comment)
	if err != nil {
		return fmt.Errorf("error creating review: %v", err)
	}
	return nil
}

// GetReviews lists reviews newest first; approvedOnly serves the public
// storefront, the back office sees everything.
func (c *Connection) GetReviews(approvedOnly bool) ([]models.Review, error) {
	query := `
        SELECT id, name, rating, comment, approved, created_at
        FROM reviews
    `
	if approvedOnly {
		query += ` WHERE approved = 1`
	}
	query += ` ORDER BY created_at DESC LIMIT 200`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %v", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.Name, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (c *Connection) ApproveReview(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.db.ExecContext(ctx,
		`UPDATE reviews SET approved = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error approving review: %v", err)
	}
	return requireRowAffected(result)
}

func (c *Connection) DeleteReview(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting review: %v", err)
	}
	return requireRowAffected(result)
}
