package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetcrumb-bakery-api/models"
)

func pickupOrder() *models.Order {
	return &models.Order{
		Status:       models.OrderStatusAwaitingETransfer,
		DeliveryMode: models.DeliveryModePickup,
		Items: []models.CartLine{
			{Title: "Chocolate Cake", UnitPrice: 45, Quantity: 1},
		},
	}
}

// walk repeatedly applies the single offered stage until none is left and
// returns the visited statuses.
func walk(t *testing.T, o *models.Order) []models.OrderStatus {
	t.Helper()

	var visited []models.OrderStatus
	for i := 0; i < 10; i++ {
		next := OrderNextStages(o)
		if len(next) == 0 {
			return visited
		}
		require.Len(t, next, 1, "the UI never offers a branching choice")
		o.Status = next[0]
		visited = append(visited, next[0])
	}
	t.Fatal("lifecycle did not terminate")
	return nil
}

func TestOrderStandardPickupProgression(t *testing.T) {
	o := pickupOrder()

	visited := walk(t, o)
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusPaymentReceived,
		models.OrderStatusInPreparation,
		models.OrderStatusReadyForPickup,
		models.OrderStatusCompleted,
	}, visited)
	assert.Empty(t, OrderNextStages(o))
}

func TestOrderCustomCakeInsertsDesignConfirmed(t *testing.T) {
	o := pickupOrder()
	o.Items = append(o.Items, models.CartLine{
		Title:           "Unicorn Cake",
		UnitPrice:       120,
		Quantity:        1,
		CustomRequestID: "req-1",
	})

	visited := walk(t, o)
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusPaymentReceived,
		models.OrderStatusDesignConfirmed,
		models.OrderStatusInPreparation,
		models.OrderStatusReadyForPickup,
		models.OrderStatusCompleted,
	}, visited)
}

func TestOrderDeliveryRelabelsFulfilmentStage(t *testing.T) {
	pickup := pickupOrder()
	delivery := pickupOrder()
	delivery.DeliveryMode = models.DeliveryModeDelivery

	pickupVisited := walk(t, pickup)
	deliveryVisited := walk(t, delivery)

	// Same number of stages, only the fulfilment label differs.
	require.Len(t, deliveryVisited, len(pickupVisited))
	assert.Contains(t, deliveryVisited, models.OrderStatusOutForDelivery)
	assert.NotContains(t, deliveryVisited, models.OrderStatusReadyForPickup)
}

func TestOrderOutForDeliveryAdvancesToCompleted(t *testing.T) {
	o := pickupOrder()
	o.DeliveryMode = models.DeliveryModeDelivery
	o.Status = models.OrderStatusOutForDelivery

	assert.Equal(t, []models.OrderStatus{models.OrderStatusCompleted}, OrderNextStages(o))
}

func TestOrderTerminalStatesAreAbsorbing(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusCancelled,
		models.OrderStatusCompleted,
	} {
		o := pickupOrder()
		o.Status = status
		assert.Empty(t, OrderNextStages(o), "status %s", status)
		assert.False(t, OrderCanTransition(o, models.OrderStatusCancelled))
	}
}

func TestOrderCancelFromAnyNonTerminalStage(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusAwaitingETransfer,
		models.OrderStatusPaymentReceived,
		models.OrderStatusDesignConfirmed,
		models.OrderStatusInPreparation,
		models.OrderStatusReadyForPickup,
		models.OrderStatusOutForDelivery,
	} {
		o := pickupOrder()
		o.Status = status
		assert.True(t, OrderCanTransition(o, models.OrderStatusCancelled), "status %s", status)
	}
}

func TestOrderCanTransitionRejectsSkippedStages(t *testing.T) {
	o := pickupOrder()

	assert.True(t, OrderCanTransition(o, models.OrderStatusPaymentReceived))
	assert.False(t, OrderCanTransition(o, models.OrderStatusInPreparation))
	assert.False(t, OrderCanTransition(o, models.OrderStatusCompleted))
	// Standard order never offers Design Confirmed.
	o.Status = models.OrderStatusPaymentReceived
	assert.False(t, OrderCanTransition(o, models.OrderStatusDesignConfirmed))
	assert.True(t, OrderCanTransition(o, models.OrderStatusInPreparation))
}

func TestOrderUnknownStatusFallsBackToTimeline(t *testing.T) {
	o := pickupOrder()
	o.Status = "Processing" // legacy value from before the vocabulary settled
	o.Timeline = []models.OrderTimelineEntry{
		{Status: models.OrderStatusAwaitingETransfer},
		{Status: models.OrderStatusPaymentReceived},
	}

	assert.Equal(t, []models.OrderStatus{models.OrderStatusInPreparation}, OrderNextStages(o))
}

func TestOrderTimelineFallbackHonorsCustomItemAndMode(t *testing.T) {
	o := pickupOrder()
	o.Status = "Processing"
	o.DeliveryMode = models.DeliveryModeDelivery
	o.Items[0].CustomRequestID = "req-9"
	o.Timeline = []models.OrderTimelineEntry{
		{Status: models.OrderStatusPaymentReceived},
	}

	assert.Equal(t, []models.OrderStatus{models.OrderStatusDesignConfirmed}, OrderNextStages(o))

	o.Timeline = append(o.Timeline,
		models.OrderTimelineEntry{Status: models.OrderStatusDesignConfirmed},
		models.OrderTimelineEntry{Status: models.OrderStatusInPreparation},
	)
	assert.Equal(t, []models.OrderStatus{models.OrderStatusOutForDelivery}, OrderNextStages(o))
}

func TestOrderTimelineFallbackSkipsUnrecognizedEntries(t *testing.T) {
	o := pickupOrder()
	o.Status = "Processing"
	o.Timeline = []models.OrderTimelineEntry{
		{Status: models.OrderStatusPaymentReceived},
		{Status: "Being Decorated"},
	}

	assert.Equal(t, []models.OrderStatus{models.OrderStatusInPreparation}, OrderNextStages(o))
}

func TestOrderUnknownStatusWithoutHistory(t *testing.T) {
	o := pickupOrder()
	o.Status = "Processing"

	assert.Empty(t, OrderNextStages(o))
	// Cancelling is still allowed; the order is not terminal.
	assert.True(t, OrderCanTransition(o, models.OrderStatusCancelled))
}
