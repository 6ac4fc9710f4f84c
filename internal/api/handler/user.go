package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

type UserHandler struct {
	users usecase.UserService
}

func NewUserHandler(users usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerUserRequest struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
}

type userResponse struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
	StarsCount int64  `json:"stars_count"`
	VideoCount int64  `json:"video_count,omitempty"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, created, err := h.users.Register(r.Context(), req.TelegramID, req.FullName)
	if err != nil {
		DomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	JSON(w, status, userResponse{
		TelegramID: user.TelegramID,
		FullName:   user.FullName,
		StarsCount: user.StarsCount,
	})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	telegramID, err := pathUserID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "user ID must be an integer")
		return
	}

	profile, err := h.users.GetProfile(r.Context(), telegramID)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, userResponse{
		TelegramID: profile.User.TelegramID,
		FullName:   profile.User.FullName,
		StarsCount: profile.User.StarsCount,
		VideoCount: profile.VideoCount,
	})
}

func pathUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}
