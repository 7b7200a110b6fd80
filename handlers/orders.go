package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/middleware"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/queue"
	"sweetcrumb-bakery-api/services/lifecycle"
	"sweetcrumb-bakery-api/utils"
)

type OrderHandler struct {
	db       *database.Connection
	jobQueue *queue.Queue
}

func NewOrderHandler(db *database.Connection, q *queue.Queue) *OrderHandler {
	return &OrderHandler{db: db, jobQueue: q}
}

// orderView is the order plus the stages it may legally move to next. The
// back-office uses NextStages to render the status buttons.
type orderView struct {
	*models.Order
	NextStages []models.OrderStatus `json:"next_stages"`
}

func newOrderView(o *models.Order) orderView {
	return orderView{Order: o, NextStages: lifecycle.OrderNextStages(o)}
}

// GetOrder returns a single order by id. Order ids are unguessable UUIDs, so
// this doubles as the customer's tracking endpoint.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.db.GetOrderByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error getting order %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newOrderView(order))
}

// ListMyOrders returns the authenticated customer's orders, newest first.
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.db.GetOrdersByEmail(user.Email)
	if err != nil {
		log.Printf("Error listing orders for %s: %v", user.Email, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// ListOrders is the admin listing, optionally filtered by ?status=.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	statusFilter := models.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.db.GetOrders(statusFilter)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// UpdateOrderStatus applies an admin status change after validating it
// against the lifecycle rules. Moving past "Awaiting e-Transfer" flips the
// payment state to received, since the first forward stage is the admin
// confirming the transfer arrived.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.OrderStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Status.IsValid() {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown status")
		return
	}

	order, err := h.db.GetOrderByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error getting order %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !lifecycle.OrderCanTransition(order, req.Status) {
		utils.SendErrorResponse(w, http.StatusConflict,
			"Order cannot move from "+string(order.Status)+" to "+string(req.Status))
		return
	}

	paymentState := order.PaymentState
	if req.Status != models.OrderStatusCancelled && req.Status != models.OrderStatusAwaitingETransfer {
		paymentState = models.PaymentStateReceived
	}

	if err := h.db.UpdateOrderStatus(id, req.Status, paymentState); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error updating order %s status: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	log.Printf("Order %s moved from %s to %s", id, order.Status, req.Status)

	if err := h.jobQueue.Enqueue(r.Context(), queue.JobTypeOrderStatusUpdate,
		map[string]interface{}{"order_id": id}); err != nil {
		log.Printf("Error enqueuing status email for order %s: %v", id, err)
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Order status updated",
		Data:    map[string]string{"order_id": id, "status": string(req.Status)},
	})
}

// CancelOrder is a shortcut for the Cancelled transition.
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.db.GetOrderByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error getting order %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !lifecycle.OrderCanTransition(order, models.OrderStatusCancelled) {
		utils.SendErrorResponse(w, http.StatusConflict, "Order is already closed")
		return
	}

	if err := h.db.UpdateOrderStatus(id, models.OrderStatusCancelled, order.PaymentState); err != nil {
		log.Printf("Error cancelling order %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := h.jobQueue.Enqueue(r.Context(), queue.JobTypeOrderStatusUpdate,
		map[string]interface{}{"order_id": id}); err != nil {
		log.Printf("Error enqueuing status email for order %s: %v", id, err)
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Order cancelled",
	})
}
