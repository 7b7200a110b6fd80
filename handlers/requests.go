package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/middleware"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/queue"
	"sweetcrumb-bakery-api/services/lifecycle"
	"sweetcrumb-bakery-api/utils"
)

type RequestHandler struct {
	db       *database.Connection
	jobQueue *queue.Queue
}

func NewRequestHandler(db *database.Connection, q *queue.Queue) *RequestHandler {
	return &RequestHandler{db: db, jobQueue: q}
}

type requestView struct {
	*models.CustomCakeRequest
	NextStages []models.RequestStatus `json:"next_stages"`
}

func newRequestView(r *models.CustomCakeRequest) requestView {
	return requestView{CustomCakeRequest: r, NextStages: lifecycle.RequestNextStages(r)}
}

// CreateRequest is the public custom cake intake form.
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		PhoneNumber   string `json:"phone_number"`
		Occasion      string `json:"occasion"`
		Size          string `json:"size"`
		Flavor        string `json:"flavor"`
		MessageOnCake string `json:"message_on_cake"`
		DesignNotes   string `json:"design_notes"`
		ImageURL      string `json:"image_url"`
		NeededBy      string `json:"needed_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.PhoneNumber == "" ||
		req.Occasion == "" || req.Size == "" || req.Flavor == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.NeededBy != "" && !utils.ValidateDate(req.NeededBy) {
		utils.SendErrorResponse(w, http.StatusBadRequest, "needed_by must be YYYY-MM-DD")
		return
	}

	request := &models.CustomCakeRequest{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Occasion:      req.Occasion,
		Size:          req.Size,
		Flavor:        req.Flavor,
		MessageOnCake: req.MessageOnCake,
		DesignNotes:   req.DesignNotes,
		ImageURL:      req.ImageURL,
		NeededBy:      req.NeededBy,
		Status:        models.RequestStatusPending,
	}

	if err := h.db.CreateCustomRequest(request); err != nil {
		log.Printf("Error creating custom request: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save request")
		return
	}

	log.Printf("Custom request %s created for %s (%s)", request.ID, request.Email, request.Occasion)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.APIResponse{
		Status:  "success",
		Message: "Request received. We will send you a quote by email.",
		Data:    map[string]string{"request_id": request.ID},
	})
}

// GetRequest returns a single request by id, for the customer's quote page.
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	request, err := h.db.GetCustomRequestByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Request not found")
			return
		}
		log.Printf("Error getting custom request %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newRequestView(request))
}

// ListMyRequests returns the authenticated customer's requests.
func (h *RequestHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.db.GetCustomRequestsByEmail(user.Email)
	if err != nil {
		log.Printf("Error listing requests for %s: %v", user.Email, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// ListRequests is the admin listing, optionally filtered by ?status=.
func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	statusFilter := models.RequestStatus(r.URL.Query().Get("status"))

	requests, err := h.db.GetCustomRequests(statusFilter)
	if err != nil {
		log.Printf("Error listing custom requests: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	views := make([]requestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, newRequestView(req))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// UpdateRequestStatus applies an admin transition. Quoting carries the quote
// amount with it: the amount is set on the request before the lifecycle check
// so that pending->quoted sees the quote it requires, and it is persisted
// together with the status. Moving to quoted also emails the customer.
func (h *RequestHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.RequestStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Status.IsValid() {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown status")
		return
	}
	if req.QuoteAmount < 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Quote amount cannot be negative")
		return
	}

	request, err := h.db.GetCustomRequestByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Request not found")
			return
		}
		log.Printf("Error getting custom request %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.QuoteAmount > 0 {
		request.QuoteAmount = req.QuoteAmount
	}

	if !lifecycle.RequestCanTransition(request, req.Status) {
		utils.SendErrorResponse(w, http.StatusConflict,
			"Request cannot move from "+string(request.Status)+" to "+string(req.Status))
		return
	}

	if err := h.db.UpdateCustomRequestStatus(id, req.Status, req.QuoteAmount); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Request not found")
			return
		}
		log.Printf("Error updating custom request %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	log.Printf("Custom request %s moved from %s to %s", id, request.Status, req.Status)

	if req.Status == models.RequestStatusQuoted {
		if err := h.jobQueue.Enqueue(r.Context(), queue.JobTypeQuoteReady,
			map[string]interface{}{"request_id": id}); err != nil {
			log.Printf("Error enqueuing quote email for request %s: %v", id, err)
		}
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Request status updated",
		Data:    map[string]string{"request_id": id, "status": string(req.Status)},
	})
}

// CancelRequest is a shortcut for the Cancelled transition.
func (h *RequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	request, err := h.db.GetCustomRequestByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Request not found")
			return
		}
		log.Printf("Error getting custom request %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !lifecycle.RequestCanTransition(request, models.RequestStatusCancelled) {
		utils.SendErrorResponse(w, http.StatusConflict, "Request is already closed")
		return
	}

	if err := h.db.UpdateCustomRequestStatus(id, models.RequestStatusCancelled, 0); err != nil {
		log.Printf("Error cancelling custom request %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Request cancelled",
	})
}
