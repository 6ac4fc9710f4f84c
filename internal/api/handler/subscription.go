package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

type SubscriptionHandler struct {
	subs usecase.SubscriptionService
}

func NewSubscriptionHandler(subs usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

type subscribeRequest struct {
	ToUser int64 `json:"to_user"`
}

type subscriptionResponse struct {
	ToUser    int64     `json:"to_user"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "user ID must be an integer")
		return
	}

	subs, err := h.subs.List(r.Context(), userID)
	if err != nil {
		DomainError(w, err)
		return
	}

	resp := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, subscriptionResponse{ToUser: sub.ToUser, CreatedAt: sub.CreatedAt})
	}
	JSON(w, http.StatusOK, map[string]any{"subscriptions": resp})
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "user ID must be an integer")
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.subs.Subscribe(r.Context(), userID, req.ToUser); err != nil {
		DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "user ID must be an integer")
		return
	}
	toUser, err := strconv.ParseInt(chi.URLParam(r, "toUser"), 10, 64)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "target user ID must be an integer")
		return
	}

	if err := h.subs.Unsubscribe(r.Context(), userID, toUser); err != nil {
		DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
