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

type ProductHandler struct {
	db *database.Connection
}

func NewProductHandler(db *database.Connection) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts is the public catalog: active, non-deleted products only.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.db.GetProducts(true)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.db.GetProductByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("Error getting product %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// ListAllProducts is the admin catalog including inactive products.
func (h *ProductHandler) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.db.GetProducts(false)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.BasePrice < 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name and a non-negative base price are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Sizes:       req.Sizes,
		Active:      active,
	}

	if err := h.db.CreateProduct(product); err != nil {
		log.Printf("Error creating product: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	log.Printf("Product %s created: %s", product.ID, product.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.ProductUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.BasePrice < 0 {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Name and a non-negative base price are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Sizes:       req.Sizes,
		Active:      active,
	}

	if err := h.db.UpdateProduct(product); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("Error updating product %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Product updated",
	})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.db.DeleteProduct(id); err != nil {
		if err == sql.ErrNoRows {
			utils.SendErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("Error deleting product %s: %v", id, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Product deleted",
	})
}
