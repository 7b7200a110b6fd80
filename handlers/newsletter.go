package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/queue"
	"sweetcrumb-bakery-api/utils"
)

type NewsletterHandler struct {
	db       *database.Connection
	jobQueue *queue.Queue
}

func NewNewsletterHandler(db *database.Connection, q *queue.Queue) *NewsletterHandler {
	return &NewsletterHandler{db: db, jobQueue: q}
}

// Subscribe adds an email to the newsletter list. Duplicates get the same
// success answer so the endpoint does not leak who is subscribed, but no
// second welcome email goes out.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		utils.SendErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	subscriber := &models.Subscriber{
		ID:    uuid.NewString(),
		Email: email,
	}

	alreadySubscribed, err := h.db.AddSubscriber(subscriber)
	if err != nil {
		log.Printf("Error adding subscriber: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	if !alreadySubscribed {
		if err := h.jobQueue.Enqueue(r.Context(), queue.JobTypeNewsletterWelcome,
			map[string]interface{}{"email": email}); err != nil {
			log.Printf("Error enqueuing welcome email for %s: %v", email, err)
		}
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "You are subscribed to the newsletter",
	})
}

// ListSubscribers is the admin export of the newsletter list.
func (h *NewsletterHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.db.GetSubscribers()
	if err != nil {
		log.Printf("Error listing subscribers: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subscribers)
}
