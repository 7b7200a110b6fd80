package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/utils"
)

type SettingsHandler struct {
	db *database.Connection
}

func NewSettingsHandler(db *database.Connection) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings serves the public storefront settings (hours, pickup address,
// e-Transfer email, registration discount percentage).
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GetSettings()
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if settings.RegistrationDiscountPercent < 0 || settings.RegistrationDiscountPercent > 100 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Registration discount must be between 0 and 100")
		return
	}

	if err := h.db.UpdateSettings(&settings); err != nil {
		log.Printf("Error updating settings: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Settings updated",
	})
}

func (h *SettingsHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.db.GetHero()
	if err != nil {
		log.Printf("Error getting hero content: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hero)
}

func (h *SettingsHandler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	var hero models.HeroContent
	if err := json.NewDecoder(r.Body).Decode(&hero); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.db.UpdateHero(&hero); err != nil {
		log.Printf("Error updating hero content: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update hero content")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Hero content updated",
	})
}
