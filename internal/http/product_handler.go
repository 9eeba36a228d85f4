package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products repository.ProductRepository
	timeout  time.Duration
}

func NewProductHandler(products repository.ProductRepository, timeout time.Duration) *ProductHandler {
	return &ProductHandler{products: products, timeout: timeout}
}

type ProductRequestDTO struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
	Description string          `json:"description"`
	Subcategory string          `json:"subcategory"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"image_url"`
}

// List supports ?cat=, ?minPrice=, ?maxPrice= and ?subcategory= filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter, ok := parseProductFilter(w, r)
	if !ok {
		return
	}

	products, err := h.products.List(ctx, filter)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := idParam(w, r, "productID")
	if !ok {
		return
	}

	product, err := h.products.GetByID(ctx, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product := req.toDomain(0)
	if err := h.products.Create(ctx, product); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := idParam(w, r, "productID")
	if !ok {
		return
	}

	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product := req.toDomain(productID)
	if err := h.products.Update(ctx, product); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := idParam(w, r, "productID")
	if !ok {
		return
	}

	if err := h.products.Delete(ctx, productID); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (req ProductRequestDTO) toDomain(productID int64) *domain.Product {
	return &domain.Product{
		ProductID:   productID,
		Name:        req.Name,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Subcategory: req.Subcategory,
		Stock:       req.Stock,
		Featured:    req.Featured,
		ImageURL:    req.ImageURL,
	}
}

func decodeProductRequest(w http.ResponseWriter, r *http.Request) (ProductRequestDTO, bool) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return req, false
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return req, false
	}
	return req, true
}

func parseProductFilter(w http.ResponseWriter, r *http.Request) (domain.ProductFilter, bool) {
	var filter domain.ProductFilter
	q := r.URL.Query()

	if v := q.Get("cat"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_filter", "cat must be an integer")
			return filter, false
		}
		filter.CategoryID = &categoryID
	}
	if v := q.Get("minPrice"); v != "" {
		minPrice, err := decimal.NewFromString(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_filter", "minPrice must be a number")
			return filter, false
		}
		filter.MinPrice = &minPrice
	}
	if v := q.Get("maxPrice"); v != "" {
		maxPrice, err := decimal.NewFromString(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_filter", "maxPrice must be a number")
			return filter, false
		}
		filter.MaxPrice = &maxPrice
	}
	if v := q.Get("subcategory"); v != "" {
		filter.Subcategory = &v
	}

	return filter, true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", name+" must be positive")
		return 0, false
	}
	return id, true
}
