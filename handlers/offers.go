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

type OfferHandler struct {
	db *database.Connection
}

func NewOfferHandler(db *database.Connection) *OfferHandler {
	return &OfferHandler{db: db}
}

// ValidateOffer checks a promo code without touching the cart. The storefront
// uses it for inline feedback on the code field.
func (h *OfferHandler) ValidateOffer(w http.ResponseWriter, r *http.Request) {
	var req models.OfferValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Code is required")
		return
	}

	offer, err := h.db.GetOfferByCode(req.Code)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnprocessableEntity, "This promo code is not valid")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status: "success",
		Data: models.OfferValidation{
			Code:    offer.Code,
			Name:    offer.Name,
			Percent: offer.Percent,
		},
	})
}

// ListOffers returns all non-deleted offers for the back-office.
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.db.GetOffers()
	if err != nil {
		log.Printf("Error listing offers: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(offers)
}

// CreateOffer creates a promo code. An empty code gets a generated one.
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req models.OfferUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Percent <= 0 || req.Percent > 100 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Percent must be between 0 and 100")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		code = utils.GeneratePromoCode(8)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	offer := &models.Offer{
		ID:       uuid.NewString(),
		Code:     code,
		Name:     req.Name,
		Percent:  req.Percent,
		Active:   active,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}

	if err := h.db.CreateOffer(offer); err != nil {
		log.Printf("Error creating offer: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create offer")
		return
	}

	log.Printf("Offer %s created with code %s (%.0f%%)", offer.ID, offer.Code, offer.Percent)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(offer)
}

// UpdateOffer replaces the editable fields of an offer.
func (h *OfferHandler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.OfferUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" || req.Name == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Code and name are required")
		return
	}
	if req.Percent <= 0 || req.Percent > 100 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Percent must be between 0 and 100")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	offer := &models.Offer{
		ID:       id,
		Code:     req.Code,
		Name:     req.Name,
		Percent:  req.Percent,
		Active:   active,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}

	if err := h.db.UpdateOffer(offer); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Offer not found")
			return
		}
		log.Printf("Error updating offer %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update offer")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Offer updated",
	})
}

// DeleteOffer soft-deletes an offer; past redemptions keep their reference.
func (h *OfferHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.db.DeleteOffer(id); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Offer not found")
			return
		}
		log.Printf("Error deleting offer %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete offer")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Offer deleted",
	})
}
