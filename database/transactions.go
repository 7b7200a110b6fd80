package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sweetcrumb-bakery-api/models"
)

type Transaction struct {
	tx *sql.Tx
}

func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// SaveOrder inserts the order row with its server-computed breakdown.
func (t *Transaction) SaveOrder(order *models.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO orders (
            id, customer_name, email, phone_number, delivery_mode,
            street, city, postal_code, notes,
            status, payment_state, promo_code,
            subtotal, registration_discount, promo_discount,
            taxable_amount, tax, delivery_fee, total,
            created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `

	_, err := t.tx.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.Email,
		order.PhoneNumber,
		string(order.DeliveryMode),
		order.Street,
		order.City,
		order.PostalCode,
		order.Notes,
		string(order.Status),
		string(order.PaymentState),
		order.PromoCode,
		order.Breakdown.Subtotal,
		order.Breakdown.RegistrationDiscountAmount,
		order.Breakdown.PromoDiscountAmount,
		order.Breakdown.TaxableAmount,
		order.Breakdown.Tax,
		order.Breakdown.DeliveryFee,
		order.Breakdown.Total,
	)
	if err != nil {
		log.Printf("Error saving order %s: %v", order.ID, err)
		return fmt.Errorf("failed to save order: %v", err)
	}

	return nil
}

// SaveOrderItems inserts one row per cart line. Product size lists are not
// denormalized here; each line carries the title and unit price it was sold
// at.
func (t *Transaction) SaveOrderItems(orderID string, items []models.CartLine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO order_items (
            order_id, product_id, combo_id, title, unit_price,
            quantity, selected_size, custom_request_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	for _, item := range items {
		_, err := t.tx.ExecContext(ctx, query,
			orderID,
			nullString(item.ProductID),
			nullString(item.ComboID),
			item.Title,
			item.UnitPrice,
			item.Quantity,
			nullString(item.SelectedSize),
			nullString(item.CustomRequestID),
		)
		if err != nil {
			log.Printf("Error saving order item for order %s: %v", orderID, err)
			return fmt.Errorf("failed to save order item: %v", err)
		}
	}

	return nil
}

// SaveStatusHistory appends one timeline entry for the order.
func (t *Transaction) SaveStatusHistory(orderID string, status models.OrderStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `INSERT INTO order_status_history (order_id, status, created_at) VALUES (?, ?, NOW())`

	_, err := t.tx.ExecContext(ctx, query, orderID, string(status))
	if err != nil {
		return fmt.Errorf("failed to save status history: %v", err)
	}
	return nil
}

// MarkRegistrationDiscountUsed burns the customer's one-time first-order
// discount inside the checkout transaction.
func (t *Transaction) MarkRegistrationDiscountUsed(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `UPDATE users SET registration_discount_used = 1 WHERE email = ?`

	_, err := t.tx.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to mark registration discount used: %v", err)
	}
	return nil
}

// SaveOfferRedemption records which offer was applied to which order.
func (t *Transaction) SaveOfferRedemption(offerID, orderID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `INSERT INTO offer_redemptions (offer_id, order_id, redeemed_at) VALUES (?, ?, NOW())`

	_, err := t.tx.ExecContext(ctx, query, offerID, orderID)
	if err != nil {
		return fmt.Errorf("failed to save offer redemption: %v", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func marshalJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
