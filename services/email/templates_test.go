package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sweetcrumb-bakery-api/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:           "a1b2c3",
		CustomerName: "Maya",
		Email:        "maya@example.com",
		DeliveryMode: models.DeliveryModeDelivery,
		Status:       models.OrderStatusAwaitingETransfer,
		Items: []models.CartLine{
			{ProductID: "p1", Title: "Chocolate Fudge Cake", UnitPrice: 45.00, Quantity: 1, SelectedSize: "8 inch"},
			{ProductID: "p2", Title: "Lemon Tart", UnitPrice: 5.00, Quantity: 2},
		},
		Breakdown: models.PriceBreakdown{
			Subtotal:                   55.00,
			RegistrationDiscountAmount: 5.50,
			PromoDiscountAmount:        0,
			TaxableAmount:              49.50,
			Tax:                        6.44,
			DeliveryFee:                10.00,
			Total:                      65.94,
		},
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderOrderConfirmation(t *testing.T) {
	html := RenderOrderConfirmation(sampleOrder())

	assert.Contains(t, html, "Maya")
	assert.Contains(t, html, "a1b2c3")
	assert.Contains(t, html, "Chocolate Fudge Cake (8 inch)")
	assert.Contains(t, html, "Lemon Tart")
	assert.Contains(t, html, "$45.00")
	assert.Contains(t, html, "$10.00")
	assert.Contains(t, html, "$65.94")
	assert.Contains(t, html, "e-Transfer")
}

func TestRenderOrderStatus(t *testing.T) {
	order := sampleOrder()
	order.Status = models.OrderStatusOutForDelivery

	html := RenderOrderStatus(order)

	assert.Contains(t, html, "Out for Delivery")
	assert.Contains(t, html, "2026-03-14")
}

func TestRenderQuote(t *testing.T) {
	request := &models.CustomCakeRequest{
		ID:          "r1",
		Name:        "Sam",
		Occasion:    "wedding",
		Size:        "3 tier",
		Flavor:      "red velvet",
		QuoteAmount: 420.00,
	}

	html := RenderQuote(request)

	assert.Contains(t, html, "Sam")
	assert.Contains(t, html, "wedding")
	assert.Contains(t, html, "$420.00")
}

func TestRenderWelcome(t *testing.T) {
	html := RenderWelcome()

	assert.Contains(t, html, "Welcome!")
	assert.Contains(t, html, "Sweetcrumb Bakery")
}
