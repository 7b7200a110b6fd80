package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sweetcrumb-bakery-api/models"
)

// AddSubscriber stores a newsletter subscriber. Returns alreadySubscribed
// true when the email is a duplicate so the handler can answer politely
// without enqueuing a second welcome email.
func (c *Connection) AddSubscriber(s *models.Subscriber) (alreadySubscribed bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `INSERT INTO newsletter_subscribers (id, email, subscribed_at) VALUES (?, ?, NOW())`

	_, err = c.db.ExecContext(ctx, query, s.ID, strings.ToLower(strings.TrimSpace(s.Email)))
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return true, nil
		}
		return false, fmt.Errorf("error adding subscriber: %v", err)
	}
	return false, nil
}

func (c *Connection) GetSubscribers() ([]models.Subscriber, error) {
	query := `SELECT id, email, subscribed_at FROM newsletter_subscribers ORDER BY subscribed_at DESC`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing subscribers: %v", err)
	}
	defer rows.Close()

	var subscribers []models.Subscriber
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}
