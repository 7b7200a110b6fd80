package lifecycle

import (
	"sweetcrumb-bakery-api/models"
)

var requestStages = []models.RequestStatus{
	models.RequestStatusPending,
	models.RequestStatusQuoted,
	models.RequestStatusApproved,
	models.RequestStatusDesignConfirmed,
	models.RequestStatusInProduction,
	models.RequestStatusReady,
	models.RequestStatusCompleted,
}

func requestStageIndex(status models.RequestStatus) int {
	for i, s := range requestStages {
		if s == status {
			return i
		}
	}
	return -1
}

// RequestNextStages returns the legal forward stages for a custom cake
// request: the single stage after the current one, or none for terminal,
// unknown or last statuses. Moving off pending requires a positive quote;
// no other transition carries a data precondition.
func RequestNextStages(r *models.CustomCakeRequest) []models.RequestStatus {
	if r.Status.IsTerminal() {
		return nil
	}

	idx := requestStageIndex(r.Status)
	if idx < 0 || idx+1 >= len(requestStages) {
		return nil
	}

	next := requestStages[idx+1]
	if next == models.RequestStatusQuoted && r.QuoteAmount <= 0 {
		return nil
	}
	return []models.RequestStatus{next}
}

// RequestCanTransition reports whether the requested target status may be
// applied. Cancelled is reachable from any non-terminal stage.
func RequestCanTransition(r *models.CustomCakeRequest, target models.RequestStatus) bool {
	if target == models.RequestStatusCancelled {
		return !r.Status.IsTerminal()
	}
	for _, next := range RequestNextStages(r) {
		if next == target {
			return true
		}
	}
	return false
}
