package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
)

type ProfileHandler struct {
	profiles repository.ProfileRepository
	timeout  time.Duration
}

func NewProfileHandler(profiles repository.ProfileRepository, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, timeout: timeout}
}

type ProfileRequestDTO struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	profile, err := h.profiles.GetByUserID(ctx, user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req ProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	profile := &domain.Profile{
		UserID:  user.UserID,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
	}
	if err := h.profiles.Update(ctx, profile); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
