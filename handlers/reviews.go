package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/utils"
)

type ReviewHandler struct {
	db *database.Connection
}

func NewReviewHandler(db *database.Connection) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// CreateReview accepts a public review submission. Reviews are held for
// moderation; nothing shows on the storefront until an admin approves it.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Comment) == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name and comment are required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	review := &models.Review{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(req.Name),
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}

	if err := h.db.CreateReview(review); err != nil {
		log.Printf("Error creating review: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.APIResponse{
		Status:  "success",
		Message: "Thank you! Your review will appear once approved.",
	})
}

// ListReviews serves only approved reviews to the storefront.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.db.GetReviews(true)
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

// ListAllReviews is the moderation queue: every review, approved or not.
func (h *ReviewHandler) ListAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.db.GetReviews(false)
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

func (h *ReviewHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.db.ApproveReview(id); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Review not found")
			return
		}
		log.Printf("Error approving review %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to approve review")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Review approved",
	})
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.db.DeleteReview(id); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Review not found")
			return
		}
		log.Printf("Error deleting review %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Review deleted",
	})
}
