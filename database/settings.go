package database

import (
	"context"
	"fmt"
	"time"

	"sweetcrumb-bakery-api/models"
)

// Settings and hero content live in singleton rows with id = 1.

func (c *Connection) GetSettings() (*models.SiteSettings, error) {
	query := `
        SELECT COALESCE(store_hours, ''), COALESCE(pickup_address, ''),
               COALESCE(etransfer_email, ''), registration_discount_percent
        FROM site_settings
        WHERE id = 1
    `

	var s models.SiteSettings
	err := c.db.QueryRow(query).Scan(&s.StoreHours, &s.PickupAddress,
		&s.ETransferEmail, &s.RegistrationDiscountPercent)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %v", err)
	}
	return &s, nil
}

func (c *Connection) UpdateSettings(s *models.SiteSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        UPDATE site_settings
        SET store_hours = ?, pickup_address = ?, etransfer_email = ?,
            registration_discount_percent = ?
        WHERE id = 1
    `
	_, err := c.db.ExecContext(ctx, query, s.StoreHours, s.PickupAddress,
		s.ETransferEmail, s.RegistrationDiscountPercent)
	if err != nil {
		return fmt.Errorf("error updating settings: %v", err)
	}
	return nil
}

func (c *Connection) GetHero() (*models.HeroContent, error) {
	query := `
        SELECT COALESCE(heading, ''), COALESCE(subheading, ''),
               COALESCE(image, ''), COALESCE(cta_text, ''), COALESCE(cta_link, '')
        FROM hero_content
        WHERE id = 1
    `

	var h models.HeroContent
	err := c.db.QueryRow(query).Scan(&h.Heading, &h.Subheading, &h.Image,
		&h.CTAText, &h.CTALink)
	if err != nil {
		return nil, fmt.Errorf("error getting hero content: %v", err)
	}
	return &h, nil
}

func (c *Connection) UpdateHero(h *models.HeroContent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
        UPDATE hero_content
        SET heading = ?, subheading = ?, image = ?, cta_text = ?, cta_link = ?
        WHERE id = 1
    `
	_, err := c.db.ExecContext(ctx, query, h.Heading, h.Subheading, h.Image,
		h.CTAText, h.CTALink)
	if err != nil {
		return fmt.Errorf("error updating hero content: %v", err)
	}
	return nil
}
