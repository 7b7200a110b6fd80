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

// GetProducts returns the catalog. When activeOnly is set (the public
// storefront), hidden and soft-deleted products are excluded.
func (c *Connection) GetProducts(activeOnly bool) ([]models.Product, error) {
	query := `
        SELECT id, name, description, COALESCE(image, ''), COALESCE(category, ''),
               base_price, COALESCE(sizes_json, '[]'), active, created_at
        FROM products
        WHERE deleted_at IS NULL
    `
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY category ASC, name ASC`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (c *Connection) GetProductByID(id string) (*models.Product, error) {
	query := `
        SELECT id, name, description, COALESCE(image, ''), COALESCE(category, ''),
               base_price, COALESCE(sizes_json, '[]'), active, created_at
        FROM products
        WHERE id = ? AND deleted_at IS NULL
    `
	return scanProduct(c.db.QueryRow(query, id))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var sizesJSON string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Category,
		&p.BasePrice, &sizesJSON, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sizesJSON), &p.Sizes); err != nil {
		log.Printf("Warning: invalid sizes_json for product %s: %v", p.ID, err)
		p.Sizes = nil
	}
	return &p, nil
}

func (c *Connection) CreateProduct(p *models.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO products (id, name, description, image, category,
                              base_price, sizes_json, active, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `
	_, err := c.db.ExecContext(ctx, query, p.ID, p.Name, p.Description,
		p.Image, p.Category, p.BasePrice, marshalJSON(p.Sizes), p.Active)
	if err != nil {
		return fmt.Errorf("error creating product: %v", err)
	}
	return nil
}

func (c *Connection) UpdateProduct(p *models.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        UPDATE products
        SET name = ?, description = ?, image = ?, category = ?,
            base_price = ?, sizes_json = ?, active = ?
        WHERE id = ? AND deleted_at IS NULL
    `
	result, err := c.db.ExecContext(ctx, query, p.Name, p.Description,
		p.Image, p.Category, p.BasePrice, marshalJSON(p.Sizes), p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("error updating product: %v", err)
	}
	return requireRowAffected(result)
}

// DeleteProduct soft-deletes so placed orders keep resolving their lines.
func (c *Connection) DeleteProduct(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.db.ExecContext(ctx,
		`UPDATE products SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error deleting product: %v", err)
	}
	return requireRowAffected(result)
}

func (c *Connection) GetCombos(activeOnly bool) ([]models.Combo, error) {
	query := `
        SELECT id, name, description, COALESCE(image, ''), price,
               COALESCE(items_json, '[]'), active, created_at
        FROM combos
        WHERE deleted_at IS NULL
    `
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing combos: %v", err)
	}
	defer rows.Close()

	var combos []models.Combo
	for rows.Next() {
		combo, err := scanCombo(rows)
		if err != nil {
			return nil, err
		}
		combos = append(combos, *combo)
	}
	return combos, rows.Err()
}

func (c *Connection) GetComboByID(id string) (*models.Combo, error) {
	query := `
        SELECT id, name, description, COALESCE(image, ''), price,
               COALESCE(items_json, '[]'), active, created_at
        FROM combos
        WHERE id = ? AND deleted_at IS NULL
    `
	return scanCombo(c.db.QueryRow(query, id))
}

func scanCombo(row rowScanner) (*models.Combo, error) {
	var cb models.Combo
	var itemsJSON string
	err := row.Scan(&cb.ID, &cb.Name, &cb.Description, &cb.Image, &cb.Price,
		&itemsJSON, &cb.Active, &cb.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(itemsJSON), &cb.Items); err != nil {
		log.Printf("Warning: invalid items_json for combo %s: %v", cb.ID, err)
		cb.Items = nil
	}
	return &cb, nil
}

func (c *Connection) CreateCombo(cb *models.Combo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        INSERT INTO combos (id, name, description, image, price, items_json, active, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
    `
	_, err := c.db.ExecContext(ctx, query, cb.ID, cb.Name, cb.Description,
		cb.Image, cb.Price, marshalJSON(cb.Items), cb.Active)
	if err != nil {
		return fmt.Errorf("error creating combo: %v", err)
	}
	return nil
}

func (c *Connection) UpdateCombo(cb *models.Combo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        UPDATE combos
        SET name = ?, description = ?, image = ?, price = ?, items_json = ?, active = ?
        WHERE id = ? AND deleted_at IS NULL
    `
	result, err := c.db.ExecContext(ctx, query, cb.Name, cb.Description,
		cb.Image, cb.Price, marshalJSON(cb.Items), cb.Active, cb.ID)
	if err != nil {
		return fmt.Errorf("error updating combo: %v", err)
	}
	return requireRowAffected(result)
}

func (c *Connection) DeleteCombo(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.db.ExecContext(ctx,
		`UPDATE combos SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error deleting combo: %v", err)
	}
	return requireRowAffected(result)
}

func requireRowAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
