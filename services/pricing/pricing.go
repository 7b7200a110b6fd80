package pricing

import (
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/utils"
)

const (
	// HSTRate is the fixed Ontario HST applied to the taxable amount.
	HSTRate = 0.13

	// DeliveryFee is the flat fee charged when delivery mode is "delivery".
	DeliveryFee = 10.00
)

// ComputeBreakdown derives the full itemized price breakdown for a cart.
// Pure function; callers recompute on every cart or form change.
//
// The computation order is fixed: subtotal, then the registration and promo
// discounts each taken off the same subtotal (never compounded), then the
// taxable amount floored at zero, then tax, then the flat delivery fee.
// Negative unit prices and quantities contribute zero instead of pulling the
// subtotal down. An empty cart produces zeros everywhere except the delivery
// fee, which still follows the delivery mode; rejecting an empty checkout is
// the caller's job.
func ComputeBreakdown(lines []models.CartLine, registrationPercent, promoPercent float64, mode models.DeliveryMode) models.PriceBreakdown {
	var subtotal float64
	for _, line := range lines {
		price := line.UnitPrice
		if price < 0 {
			price = 0
		}
		qty := line.Quantity
		if qty < 0 {
			qty = 0
		}
		subtotal += price * float64(qty)
	}
	subtotal = utils.Round(subtotal)

	registrationDiscount := utils.Round(subtotal * clampPercent(registrationPercent) / 100)
	promoDiscount := utils.Round(subtotal * clampPercent(promoPercent) / 100)

	// Combined discounts may exceed 100%; the taxable amount clamps at zero
	// instead of capping the percentages.
	taxable := utils.Round(subtotal - registrationDiscount - promoDiscount)
	if taxable < 0 {
		taxable = 0
	}

	tax := utils.Round(taxable * HSTRate)

	var deliveryFee float64
	if mode == models.DeliveryModeDelivery {
		deliveryFee = DeliveryFee
	}

	return models.PriceBreakdown{
		Subtotal:                   subtotal,
		RegistrationDiscountAmount: registrationDiscount,
		PromoDiscountAmount:        promoDiscount,
		TaxableAmount:              taxable,
		Tax:                        tax,
		DeliveryFee:                deliveryFee,
		Total:                      utils.Round(taxable + tax + deliveryFee),
	}
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
