package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/jason-li-codes/capstone-api-starter/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps service and storage errors onto HTTP statuses.
// Precondition failures are the caller's problem (400), missing records are
// 404, everything unclassified is a 500.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		respondError(w, http.StatusBadRequest, "profile_not_found", "a shipping profile is required before checkout")
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "cart_empty", "cart is empty")
	case errors.Is(err, repository.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", "no such item in cart")
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, repository.ErrCategoryNotFound):
		respondError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, repository.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, "profile_not_found", "profile not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		log.Printf("unclassified error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
