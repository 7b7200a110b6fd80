package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sweetcrumb-bakery-api/models"
)

func TestComputeBreakdownSubtotal(t *testing.T) {
	lines := []models.CartLine{
		{Title: "Chocolate Cake", UnitPrice: 20, Quantity: 2},
		{Title: "Cupcake Box", UnitPrice: 15, Quantity: 1},
	}

	b := ComputeBreakdown(lines, 0, 0, models.DeliveryModePickup)
	assert.Equal(t, 55.00, b.Subtotal)
	assert.Equal(t, 0.0, b.RegistrationDiscountAmount)
	assert.Equal(t, 0.0, b.PromoDiscountAmount)
	assert.Equal(t, 55.00, b.TaxableAmount)
}

func TestComputeBreakdownClampsNegativeContributions(t *testing.T) {
	lines := []models.CartLine{
		{Title: "Vanilla Cake", UnitPrice: 30, Quantity: 1},
		{Title: "Bad price", UnitPrice: -10, Quantity: 3},
		{Title: "Bad quantity", UnitPrice: 12, Quantity: -2},
		{Title: "Zero quantity", UnitPrice: 8, Quantity: 0},
	}

	b := ComputeBreakdown(lines, 0, 0, models.DeliveryModePickup)
	assert.Equal(t, 30.00, b.Subtotal)
}

func TestComputeBreakdownDiscountsAreIndependent(t *testing.T) {
	lines := []models.CartLine{{Title: "Wedding Cake", UnitPrice: 100, Quantity: 1}}

	b := ComputeBreakdown(lines, 10, 15, models.DeliveryModePickup)
	assert.Equal(t, 100.00, b.Subtotal)
	assert.Equal(t, 10.00, b.RegistrationDiscountAmount)
	assert.Equal(t, 15.00, b.PromoDiscountAmount)
	// 75, not 100*0.9*0.85=76.50: both percentages come off the subtotal.
	assert.Equal(t, 75.00, b.TaxableAmount)
}

func TestComputeBreakdownTaxAndDeliveryFee(t *testing.T) {
	lines := []models.CartLine{{Title: "Wedding Cake", UnitPrice: 100, Quantity: 1}}

	pickup := ComputeBreakdown(lines, 10, 15, models.DeliveryModePickup)
	assert.Equal(t, 9.75, pickup.Tax)
	assert.Equal(t, 0.0, pickup.DeliveryFee)
	assert.Equal(t, 84.75, pickup.Total)

	delivery := ComputeBreakdown(lines, 10, 15, models.DeliveryModeDelivery)
	assert.Equal(t, 9.75, delivery.Tax)
	assert.Equal(t, 10.00, delivery.DeliveryFee)
	assert.Equal(t, 94.75, delivery.Total)
}

func TestComputeBreakdownTaxableNeverNegative(t *testing.T) {
	lines := []models.CartLine{{Title: "Cookie Tray", UnitPrice: 50, Quantity: 1}}

	b := ComputeBreakdown(lines, 60, 60, models.DeliveryModeDelivery)
	assert.Equal(t, 50.00, b.Subtotal)
	assert.Equal(t, 30.00, b.RegistrationDiscountAmount)
	assert.Equal(t, 30.00, b.PromoDiscountAmount)
	assert.Equal(t, 0.0, b.TaxableAmount)
	assert.Equal(t, 0.0, b.Tax)
	assert.Equal(t, 10.00, b.Total) // delivery fee only
}

func TestComputeBreakdownClampsPercentInputs(t *testing.T) {
	lines := []models.CartLine{{Title: "Cupcake Box", UnitPrice: 40, Quantity: 1}}

	b := ComputeBreakdown(lines, -5, 150, models.DeliveryModePickup)
	assert.Equal(t, 0.0, b.RegistrationDiscountAmount)
	assert.Equal(t, 40.00, b.PromoDiscountAmount)
	assert.Equal(t, 0.0, b.TaxableAmount)
}

func TestComputeBreakdownEmptyCart(t *testing.T) {
	b := ComputeBreakdown(nil, 10, 10, models.DeliveryModeDelivery)
	assert.Equal(t, 0.0, b.Subtotal)
	assert.Equal(t, 0.0, b.RegistrationDiscountAmount)
	assert.Equal(t, 0.0, b.PromoDiscountAmount)
	assert.Equal(t, 0.0, b.TaxableAmount)
	assert.Equal(t, 0.0, b.Tax)
	// The fee still follows the delivery mode; blocking empty checkouts is
	// up to the handler.
	assert.Equal(t, 10.00, b.DeliveryFee)
	assert.Equal(t, 10.00, b.Total)
}

func TestComputeBreakdownRoundsToCents(t *testing.T) {
	lines := []models.CartLine{{Title: "Macaron", UnitPrice: 3.33, Quantity: 3}}

	b := ComputeBreakdown(lines, 0, 0, models.DeliveryModePickup)
	assert.Equal(t, 9.99, b.Subtotal)
	assert.Equal(t, 1.30, b.Tax) // 9.99 * 0.13 = 1.2987
	assert.Equal(t, 11.29, b.Total)
}
