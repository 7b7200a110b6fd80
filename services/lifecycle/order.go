// Package lifecycle holds the status progression rules for orders and
// custom cake requests. Both machines are pure functions of the entity they
// inspect; the database stays the system of record and handlers only use
// these rules to decide which transitions may be offered and accepted.
package lifecycle

import (
	"sweetcrumb-bakery-api/models"
)

// orderStages is the forward progression by ordinal. The fulfilment stage
// (ordinal 4) is stored here under its pickup label; ResolveFulfilmentLabel
// maps it to "Out for Delivery" for delivery orders. The two labels are the
// same lifecycle position, never two distinct states.
var orderStages = []models.OrderStatus{
	models.OrderStatusAwaitingETransfer,
	models.OrderStatusPaymentReceived,
	models.OrderStatusDesignConfirmed,
	models.OrderStatusInPreparation,
	models.OrderStatusReadyForPickup,
	models.OrderStatusCompleted,
}

const fulfilmentOrdinal = 4

// ResolveFulfilmentLabel returns the delivery-mode label for the fulfilment
// stage.
func ResolveFulfilmentLabel(mode models.DeliveryMode) models.OrderStatus {
	if mode == models.DeliveryModeDelivery {
		return models.OrderStatusOutForDelivery
	}
	return models.OrderStatusReadyForPickup
}

// orderStageIndex maps a status to its ordinal, folding both fulfilment
// labels onto the same position. Returns -1 for Cancelled and for any
// unrecognized (legacy) value.
func orderStageIndex(status models.OrderStatus) int {
	if status == models.OrderStatusOutForDelivery {
		return fulfilmentOrdinal
	}
	for i, s := range orderStages {
		if s == status {
			return i
		}
	}
	return -1
}

// OrderNextStages returns the legal forward stages for an order: always zero
// or one entries. Terminal orders get none. The Design Confirmed stage only
// exists for orders containing a custom cake line. When the stored status is
// not in the current vocabulary the recorded timeline is consulted instead;
// that fallback covers orders created before the vocabulary settled and is
// not a second mechanism of equal standing.
func OrderNextStages(o *models.Order) []models.OrderStatus {
	if o.Status.IsTerminal() {
		return nil
	}

	idx := orderStageIndex(o.Status)
	if idx < 0 {
		return orderNextFromTimeline(o)
	}
	return orderNextFromIndex(o, idx)
}

func orderNextFromIndex(o *models.Order, idx int) []models.OrderStatus {
	next := idx + 1
	if next >= len(orderStages) {
		return nil
	}

	// Standard orders skip Design Confirmed.
	if orderStages[next] == models.OrderStatusDesignConfirmed && !o.HasCustomItem() {
		next++
	}
	if next >= len(orderStages) {
		return nil
	}

	if next == fulfilmentOrdinal {
		return []models.OrderStatus{ResolveFulfilmentLabel(o.DeliveryMode)}
	}
	return []models.OrderStatus{orderStages[next]}
}

// orderNextFromTimeline infers the next stage from the newest recognized
// entry in the status history.
func orderNextFromTimeline(o *models.Order) []models.OrderStatus {
	for i := len(o.Timeline) - 1; i >= 0; i-- {
		idx := orderStageIndex(o.Timeline[i].Status)
		if idx < 0 {
			continue
		}
		return orderNextFromIndex(o, idx)
	}
	return nil
}

// OrderCanTransition reports whether the requested target status may be
// applied to the order. Cancelled is reachable from any non-terminal stage;
// everything else must be the single stage OrderNextStages offers.
func OrderCanTransition(o *models.Order, target models.OrderStatus) bool {
	if target == models.OrderStatusCancelled {
		return !o.Status.IsTerminal()
	}
	for _, next := range OrderNextStages(o) {
		if next == target {
			return true
		}
	}
	return false
}
