package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"sweetcrumb-bakery-api/config"
	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/middleware"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/queue"
	"sweetcrumb-bakery-api/services/pricing"
	"sweetcrumb-bakery-api/utils"
)

type CheckoutHandler struct {
	db       *database.Connection
	store    *sessions.CookieStore
	jobQueue *queue.Queue
}

func NewCheckoutHandler(db *database.Connection, cfg *config.Config, q *queue.Queue) *CheckoutHandler {
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.Session.Domain,
		MaxAge:   cfg.Session.MaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CheckoutHandler{db: db, store: store, jobQueue: q}
}

// Checkout turns the session cart into a persisted order. Everything that
// affects money is re-resolved server-side: line prices came from the
// catalog when the cart was built, the promo code is validated again here,
// and the registration discount is read from the customer record. The order
// starts at "Awaiting e-Transfer"; payment confirmation is a later admin
// action.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding checkout request: %v", err)
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CustomerName == "" || req.Email == "" || req.PhoneNumber == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !req.DeliveryMode.IsValid() {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Delivery mode must be pickup or delivery")
		return
	}
	if req.DeliveryMode == models.DeliveryModeDelivery &&
		(req.Street == "" || req.City == "" || req.PostalCode == "") {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Delivery orders require a full address")
		return
	}

	session, err := h.store.Get(r, cartSessionName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart, _ := session.Values["cart"].([]models.CartLine)
	if len(cart) == 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	// Re-validate the applied promo; it may have expired since it was
	// stored on the session. An invalid code silently prices at 0%.
	var promoPercent float64
	var promoCode string
	var offer *models.Offer
	if code, ok := session.Values["promo_code"].(string); ok && code != "" {
		offer, err = h.db.GetOfferByCode(code)
		if err == nil {
			promoPercent = offer.Percent
			promoCode = offer.Code
		} else {
			offer = nil
		}
	}

	var registrationPercent float64
	user := middleware.GetUserFromContext(r.Context())
	if user != nil {
		used, err := h.db.HasUsedRegistrationDiscount(user.Email)
		if err == nil && !used {
			if settings, err := h.db.GetSettings(); err == nil {
				registrationPercent = settings.RegistrationDiscountPercent
			}
		}
	}

	breakdown := pricing.ComputeBreakdown(cart, registrationPercent, promoPercent, req.DeliveryMode)

	order := &models.Order{
		ID:           uuid.NewString(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		DeliveryMode: req.DeliveryMode,
		Street:       req.Street,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Notes:        req.Notes,
		Status:       models.OrderStatusAwaitingETransfer,
		PaymentState: models.PaymentStateAwaiting,
		Items:        cart,
		PromoCode:    promoCode,
		Breakdown:    breakdown,
	}

	tx, err := h.db.BeginTransaction()
	if err != nil {
		log.Printf("Error beginning checkout transaction: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if err := tx.SaveOrder(order); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save order")
		return
	}
	if err := tx.SaveOrderItems(order.ID, order.Items); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save order items")
		return
	}
	if err := tx.SaveStatusHistory(order.ID, order.Status); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save order history")
		return
	}
	if registrationPercent > 0 && user != nil {
		if err := tx.MarkRegistrationDiscountUsed(user.Email); err != nil {
			utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update discount state")
			return
		}
	}
	if offer != nil {
		if err := tx.SaveOfferRedemption(offer.ID, order.ID); err != nil {
			utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to record promo redemption")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing checkout transaction: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Best-effort: the order exists either way, the worker retries the email.
	if err := h.jobQueue.Enqueue(r.Context(), queue.JobTypeOrderConfirmation,
		map[string]interface{}{"order_id": order.ID}); err != nil {
		log.Printf("Error enqueuing confirmation email for order %s: %v", order.ID, err)
	}

	// Clear the cart; the promo travels with the order now.
	delete(session.Values, "cart")
	delete(session.Values, "promo_code")
	delete(session.Values, "promo_name")
	delete(session.Values, "promo_percent")
	if err := session.Save(r, w); err != nil {
		log.Printf("Error clearing cart session: %v", err)
	}

	log.Printf("Order %s created for %s, total %s", order.ID, order.Email,
		utils.FormatMoney(breakdown.Total))

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Order placed",
		Data: models.CheckoutResponse{
			OrderID:   order.ID,
			Status:    order.Status,
			Breakdown: breakdown,
		},
	})
}
