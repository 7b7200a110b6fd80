// handlers/cart.go
package handlers

import (
	"encoding/gob"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"sweetcrumb-bakery-api/config"
	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/middleware"
	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/services/pricing"
	"sweetcrumb-bakery-api/utils"
)

func init() {
	gob.Register([]models.CartLine{})
}

const cartSessionName = "cart-session"

type CartHandler struct {
	db    *database.Connection
	store *sessions.CookieStore
}

func NewCartHandler(db *database.Connection, cfg *config.Config) *CartHandler {
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.Session.Domain,
		MaxAge:   cfg.Session.MaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CartHandler{db: db, store: store}
}

// AddToCart resolves the line server-side from the catalog (or from an
// approved custom cake request); client-supplied prices are ignored.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, cartSessionName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	var req struct {
		ProductID       string `json:"product_id"`
		ComboID         string `json:"combo_id"`
		CustomRequestID string `json:"custom_request_id"`
		Size            string `json:"size"`
		Quantity        int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding request body: %v", err)
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Quantity < 1 {
		req.Quantity = 1
	}

	line, err := h.resolveLine(req.ProductID, req.ComboID, req.CustomRequestID, req.Size, req.Quantity)
	if err != nil {
		log.Printf("Error resolving cart line: %v", err)
		utils.SendErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	cart, _ := session.Values["cart"].([]models.CartLine)

	// Merge with an existing line for the same product+size; custom cakes
	// always get their own line.
	found := false
	if line.CustomRequestID == "" {
		for i, item := range cart {
			if item.ProductID == line.ProductID && item.ComboID == line.ComboID &&
				item.SelectedSize == line.SelectedSize && !item.IsCustom() {
				cart[i].Quantity += line.Quantity
				found = true
				break
			}
		}
	}
	if !found {
		cart = append(cart, *line)
	}

	session.Values["cart"] = cart
	if err := session.Save(r, w); err != nil {
		log.Printf("Error saving session: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *CartHandler) resolveLine(productID, comboID, customRequestID, size string, quantity int) (*models.CartLine, error) {
	switch {
	case customRequestID != "":
		request, err := h.db.GetCustomRequestByID(customRequestID)
		if err != nil {
			return nil, errNotFound("Custom request not found")
		}
		if request.QuoteAmount <= 0 || !requestOrderable(request.Status) {
			return nil, errNotFound("Custom request is not ready to order")
		}
		return &models.CartLine{
			CustomRequestID: request.ID,
			Title:           "Custom Cake – " + request.Occasion,
			UnitPrice:       request.QuoteAmount,
			Quantity:        1, // one cake per request
			SelectedSize:    request.Size,
		}, nil

	case comboID != "":
		combo, err := h.db.GetComboByID(comboID)
		if err != nil {
			return nil, errNotFound("Combo not found")
		}
		return &models.CartLine{
			ComboID:   combo.ID,
			Title:     combo.Name,
			UnitPrice: combo.Price,
			Quantity:  quantity,
		}, nil

	case productID != "":
		product, err := h.db.GetProductByID(productID)
		if err != nil {
			return nil, errNotFound("Product not found")
		}
		return &models.CartLine{
			ProductID:    product.ID,
			Title:        product.Name,
			UnitPrice:    product.PriceForSize(size),
			Quantity:     quantity,
			SelectedSize: size,
		}, nil
	}
	return nil, errNotFound("Nothing to add")
}

// requestOrderable: a custom cake can be ordered once the customer approved
// the quote.
func requestOrderable(status models.RequestStatus) bool {
	switch status {
	case models.RequestStatusApproved, models.RequestStatusDesignConfirmed,
		models.RequestStatusInProduction, models.RequestStatusReady:
		return true
	}
	return false
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, cartSessionName)

	var update models.CartUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, ok := session.Values["cart"].([]models.CartLine)
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "Cart not found")
		return
	}

	for i, item := range cart {
		if item.ProductID == update.ProductID && item.ComboID == update.ComboID &&
			item.SelectedSize == update.Size {
			if update.Action == "more" {
				cart[i].Quantity++
			} else if update.Action == "remove" && cart[i].Quantity > 0 {
				cart[i].Quantity--
				if cart[i].Quantity == 0 {
					cart = append(cart[:i], cart[i+1:]...)
				}
			}
			break
		}
	}

	session.Values["cart"] = cart
	session.Save(r, w)

	w.WriteHeader(http.StatusOK)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, cartSessionName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	var req struct {
		ProductID       string `json:"product_id"`
		ComboID         string `json:"combo_id"`
		CustomRequestID string `json:"custom_request_id"`
		Size            string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, _ := session.Values["cart"].([]models.CartLine)
	for i, item := range cart {
		if item.ProductID == req.ProductID && item.ComboID == req.ComboID &&
			item.CustomRequestID == req.CustomRequestID && item.SelectedSize == req.Size {
			cart = append(cart[:i], cart[i+1:]...)
			break
		}
	}

	session.Values["cart"] = cart
	if err := session.Save(r, w); err != nil {
		log.Printf("Error saving session: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// SetDeliveryMode stores the pickup/delivery choice on the session so the
// breakdown can include the delivery fee before checkout.
func (h *CartHandler) SetDeliveryMode(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, cartSessionName)

	var req models.CartDeliveryModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Mode.IsValid() {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Delivery mode must be pickup or delivery")
		return
	}

	session.Values["delivery_mode"] = string(req.Mode)
	session.Save(r, w)

	w.WriteHeader(http.StatusOK)
}

// ApplyPromo validates the promo code against the offers table and stores
// the resulting percentage on the session. A rejected code clears any
// previously applied promo.
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, cartSessionName)

	var req models.CartPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	offer, err := h.db.GetOfferByCode(req.Code)
	if err != nil {
		delete(session.Values, "promo_code")
		delete(session.Values, "promo_name")
		delete(session.Values, "promo_percent")
		session.Save(r, w)

		utils.SendErrorResponse(w, http.StatusUnprocessableEntity, "This promo code is not valid")
		return
	}

	session.Values["promo_code"] = offer.Code
	session.Values["promo_name"] = offer.Name
	session.Values["promo_percent"] = offer.Percent
	session.Save(r, w)

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Promo code applied",
		Data: models.OfferValidation{
			Code:    offer.Code,
			Name:    offer.Name,
			Percent: offer.Percent,
		},
	})
}

// GetCart returns the session cart with a freshly computed breakdown. The
// registration discount shows up when the request carries a valid customer
// token and the customer has not used it yet.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, cartSessionName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart, _ := session.Values["cart"].([]models.CartLine)

	response := h.buildCartResponse(r, session, cart)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *CartHandler) buildCartResponse(r *http.Request, session *sessions.Session, cart []models.CartLine) models.CartResponse {
	mode := models.DeliveryModePickup
	if m, ok := session.Values["delivery_mode"].(string); ok && models.DeliveryMode(m).IsValid() {
		mode = models.DeliveryMode(m)
	}

	promoPercent, _ := session.Values["promo_percent"].(float64)
	promoCode, _ := session.Values["promo_code"].(string)
	promoName, _ := session.Values["promo_name"].(string)

	registrationPercent := h.registrationPercentFor(r)

	return models.CartResponse{
		Items:               cart,
		DeliveryMode:        mode,
		PromoCode:           promoCode,
		PromoName:           promoName,
		RegistrationPercent: registrationPercent,
		Breakdown:           pricing.ComputeBreakdown(cart, registrationPercent, promoPercent, mode),
	}
}

// registrationPercentFor resolves the one-time first-order discount for the
// authenticated customer, if any.
func (h *CartHandler) registrationPercentFor(r *http.Request) float64 {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		return 0
	}

	used, err := h.db.HasUsedRegistrationDiscount(user.Email)
	if err != nil || used {
		return 0
	}

	settings, err := h.db.GetSettings()
	if err != nil {
		log.Printf("Error getting settings for registration discount: %v", err)
		return 0
	}
	return settings.RegistrationDiscountPercent
}

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

func errNotFound(msg string) error { return notFoundError(msg) }
