package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/utils"
)

type ComboHandler struct {
	db *database.Connection
}

func NewComboHandler(db *database.Connection) *ComboHandler {
	return &ComboHandler{db: db}
}

func (h *ComboHandler) ListCombos(w http.ResponseWriter, r *http.Request) {
	combos, err := h.db.GetCombos(true)
	if err != nil {
		log.Printf("Error listing combos: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(combos)
}

func (h *ComboHandler) GetCombo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	combo, err := h.db.GetComboByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Combo not found")
			return
		}
		log.Printf("Error getting combo %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(combo)
}

func (h *ComboHandler) ListAllCombos(w http.ResponseWriter, r *http.Request) {
	combos, err := h.db.GetCombos(false)
	if err != nil {
		log.Printf("Error listing combos: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(combos)
}

func (h *ComboHandler) CreateCombo(w http.ResponseWriter, r *http.Request) {
	var req models.ComboUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Price < 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name and a non-negative price are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	combo := &models.Combo{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Items:       req.Items,
		Active:      active,
	}

	if err := h.db.CreateCombo(combo); err != nil {
		log.Printf("Error creating combo: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create combo")
		return
	}

	log.Printf("Combo %s created: %s", combo.ID, combo.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(combo)
}

func (h *ComboHandler) UpdateCombo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.ComboUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Price < 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name and a non-negative price are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	combo := &models.Combo{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Items:       req.Items,
		Active:      active,
	}

	if err := h.db.UpdateCombo(combo); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Combo not found")
			return
		}
		log.Printf("Error updating combo %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update combo")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Combo updated",
	})
}

func (h *ComboHandler) DeleteCombo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.db.DeleteCombo(id); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Combo not found")
			return
		}
		log.Printf("Error deleting combo %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete combo")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Combo deleted",
	})
}
