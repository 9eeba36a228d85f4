package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
)

type CategoryHandler struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	timeout    time.Duration
}

func NewCategoryHandler(categories repository.CategoryRepository, products repository.ProductRepository, timeout time.Duration) *CategoryHandler {
	return &CategoryHandler{categories: categories, products: products, timeout: timeout}
}

type CategoryRequestDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categoryID, ok := idParam(w, r, "categoryID")
	if !ok {
		return
	}

	category, err := h.categories.GetByID(ctx, categoryID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// ListProducts returns the products filed under one category.
func (h *CategoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categoryID, ok := idParam(w, r, "categoryID")
	if !ok {
		return
	}

	if _, err := h.categories.GetByID(ctx, categoryID); err != nil {
		handleDomainError(w, err)
		return
	}

	products, err := h.products.List(ctx, domain.ProductFilter{CategoryID: &categoryID})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, ok := decodeCategoryRequest(w, r)
	if !ok {
		return
	}

	category := &domain.Category{Name: req.Name, Description: req.Description}
	if err := h.categories.Create(ctx, category); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categoryID, ok := idParam(w, r, "categoryID")
	if !ok {
		return
	}

	req, ok := decodeCategoryRequest(w, r)
	if !ok {
		return
	}

	category := &domain.Category{CategoryID: categoryID, Name: req.Name, Description: req.Description}
	if err := h.categories.Update(ctx, category); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categoryID, ok := idParam(w, r, "categoryID")
	if !ok {
		return
	}

	if err := h.categories.Delete(ctx, categoryID); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeCategoryRequest(w http.ResponseWriter, r *http.Request) (CategoryRequestDTO, bool) {
	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return req, false
	}
	return req, true
}
