package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"sweetcrumb-bakery-api/models"
)

// GetOrderByID loads an order with its items and full status timeline.
func (c *Connection) GetOrderByID(id string) (*models.Order, error) {
	query := `
        SELECT id, customer_name, email, phone_number, delivery_mode,
               COALESCE(street, ''), COALESCE(city, ''), COALESCE(postal_code, ''),
               COALESCE(notes, ''), status, payment_state, COALESCE(promo_code, ''),
               subtotal, registration_discount, promo_discount,
               taxable_amount, tax, delivery_fee, total, created_at
        FROM orders
        WHERE id = ?
    `

	var o models.Order
	var mode, status, paymentState string
	err := c.db.QueryRow(query, id).Scan(
		&o.ID, &o.CustomerName, &o.Email, &o.PhoneNumber, &mode,
		&o.Street, &o.City, &o.PostalCode,
		&o.Notes, &status, &paymentState, &o.PromoCode,
		&o.Breakdown.Subtotal, &o.Breakdown.RegistrationDiscountAmount,
		&o.Breakdown.PromoDiscountAmount, &o.Breakdown.TaxableAmount,
		&o.Breakdown.Tax, &o.Breakdown.DeliveryFee, &o.Breakdown.Total,
		&o.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("error getting order %s: %v", id, err)
	}
	o.DeliveryMode = models.DeliveryMode(mode)
	o.Status = models.OrderStatus(status)
	o.PaymentState = models.PaymentState(paymentState)

	items, err := c.getOrderItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items

	timeline, err := c.getOrderTimeline(id)
	if err != nil {
		return nil, err
	}
	o.Timeline = timeline

	return &o, nil
}

func (c *Connection) getOrderItems(orderID string) ([]models.CartLine, error) {
	query := `
        SELECT COALESCE(product_id, ''), COALESCE(combo_id, ''), title,
               unit_price, quantity, COALESCE(selected_size, ''),
               COALESCE(custom_request_id, '')
        FROM order_items
        WHERE order_id = ?
        ORDER BY id ASC
    `

	rows, err := c.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("error getting order items: %v", err)
	}
	defer rows.Close()

	var items []models.CartLine
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(
			&line.ProductID, &line.ComboID, &line.Title,
			&line.UnitPrice, &line.Quantity, &line.SelectedSize,
			&line.CustomRequestID,
		); err != nil {
			return nil, err
		}
		items = append(items, line)
	}
	return items, rows.Err()
}

func (c *Connection) getOrderTimeline(orderID string) ([]models.OrderTimelineEntry, error) {
	query := `
        SELECT status, created_at
        FROM order_status_history
        WHERE order_id = ?
        ORDER BY created_at ASC, id ASC
    `

	rows, err := c.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("error getting order timeline: %v", err)
	}
	defer rows.Close()

	var timeline []models.OrderTimelineEntry
	for rows.Next() {
		var entry models.OrderTimelineEntry
		var status string
		if err := rows.Scan(&status, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Status = models.OrderStatus(status)
		timeline = append(timeline, entry)
	}
	return timeline, rows.Err()
}

// GetOrders lists orders newest first, optionally filtered by status. Items
// and timelines are loaded per order; admin lists are small enough that the
// N+1 reads have not mattered.
func (c *Connection) GetOrders(statusFilter models.OrderStatus) ([]*models.Order, error) {
	query := `SELECT id FROM orders`
	var args []interface{}
	if statusFilter != "" {
		query += ` WHERE status = ?`
		args = append(args, string(statusFilter))
	}
	query += ` ORDER BY created_at DESC LIMIT 200`

	return c.loadOrdersByQuery(query, args...)
}

// GetOrdersByEmail lists a customer's own orders newest first.
func (c *Connection) GetOrdersByEmail(email string) ([]*models.Order, error) {
	query := `SELECT id FROM orders WHERE email = ? ORDER BY created_at DESC LIMIT 100`
	return c.loadOrdersByQuery(query, email)
}

func (c *Connection) loadOrdersByQuery(query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %v", err)
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

	orders := make([]*models.Order, 0, len(ids))
	for _, id := range ids {
		order, err := c.GetOrderByID(id)
		if err != nil {
			log.Printf("Error loading order %s: %v", id, err)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// UpdateOrderStatus writes the new status (and payment state) and appends
// the timeline entry in one transaction. Validation against the lifecycle
// rules happens in the handler before this is called.
func (c *Connection) UpdateOrderStatus(orderID string, status models.OrderStatus, paymentState models.PaymentState) error {
	tx, err := c.BeginTransaction()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := tx.tx.ExecContext(ctx,
		`UPDATE orders SET status = ?, payment_state = ? WHERE id = ?`,
		string(status), string(paymentState), orderID)
	if err != nil {
		return fmt.Errorf("error updating order status: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.SaveStatusHistory(orderID, status); err != nil {
		return err
	}

	return tx.Commit()
}
