package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetcrumb-bakery-api/models"
)

func TestRequestFullProgression(t *testing.T) {
	r := &models.CustomCakeRequest{
		Status:      models.RequestStatusPending,
		QuoteAmount: 85,
	}

	var visited []models.RequestStatus
	for i := 0; i < 10; i++ {
		next := RequestNextStages(r)
		if len(next) == 0 {
			break
		}
		require.Len(t, next, 1)
		r.Status = next[0]
		visited = append(visited, next[0])
	}

	assert.Equal(t, []models.RequestStatus{
		models.RequestStatusQuoted,
		models.RequestStatusApproved,
		models.RequestStatusDesignConfirmed,
		models.RequestStatusInProduction,
		models.RequestStatusReady,
		models.RequestStatusCompleted,
	}, visited)
	assert.Empty(t, RequestNextStages(r))
}

func TestRequestQuoteIsPreconditionForQuoted(t *testing.T) {
	r := &models.CustomCakeRequest{Status: models.RequestStatusPending}

	assert.Empty(t, RequestNextStages(r))
	assert.False(t, RequestCanTransition(r, models.RequestStatusQuoted))

	r.QuoteAmount = 120
	assert.Equal(t, []models.RequestStatus{models.RequestStatusQuoted}, RequestNextStages(r))
	assert.True(t, RequestCanTransition(r, models.RequestStatusQuoted))
}

func TestRequestOnlyPendingCarriesQuotePrecondition(t *testing.T) {
	// Once past pending, a zero quote no longer blocks anything.
	r := &models.CustomCakeRequest{Status: models.RequestStatusApproved}
	assert.Equal(t, []models.RequestStatus{models.RequestStatusDesignConfirmed}, RequestNextStages(r))
}

func TestRequestTerminalStatesAreAbsorbing(t *testing.T) {
	for _, status := range []models.RequestStatus{
		models.RequestStatusCancelled,
		models.RequestStatusCompleted,
	} {
		r := &models.CustomCakeRequest{Status: status, QuoteAmount: 50}
		assert.Empty(t, RequestNextStages(r), "status %s", status)
		assert.False(t, RequestCanTransition(r, models.RequestStatusCancelled))
	}
}

func TestRequestCancelFromAnyNonTerminalStage(t *testing.T) {
	for _, status := range []models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusQuoted,
		models.RequestStatusApproved,
		models.RequestStatusDesignConfirmed,
		models.RequestStatusInProduction,
		models.RequestStatusReady,
	} {
		r := &models.CustomCakeRequest{Status: status}
		assert.True(t, RequestCanTransition(r, models.RequestStatusCancelled), "status %s", status)
	}
}

func TestRequestUnknownStatusOffersNothing(t *testing.T) {
	r := &models.CustomCakeRequest{Status: "on-hold", QuoteAmount: 10}
	assert.Empty(t, RequestNextStages(r))
}

func TestRequestCanTransitionRejectsSkips(t *testing.T) {
	r := &models.CustomCakeRequest{Status: models.RequestStatusQuoted}
	assert.True(t, RequestCanTransition(r, models.RequestStatusApproved))
	assert.False(t, RequestCanTransition(r, models.RequestStatusReady))
	assert.False(t, RequestCanTransition(r, models.RequestStatusPending))
}
