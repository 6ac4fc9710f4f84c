package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/filehost"
	"github.com/hszk-dev/vidshare/internal/pagination"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// DomainError maps domain and repository errors to HTTP responses so
// handlers stay free of status-code switches.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrVideoNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrTagNotFound),
		errors.Is(err, repository.ErrSubscriptionNotFound):
		Error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrDuplicateVideo),
		errors.Is(err, repository.ErrDuplicateUser),
		errors.Is(err, repository.ErrDuplicateTag),
		errors.Is(err, repository.ErrDuplicateSubscription):
		Error(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, model.ErrTitleImmutable),
		errors.Is(err, model.ErrSlugImmutable):
		Error(w, http.StatusConflict, "immutable", err.Error())
	case errors.Is(err, model.ErrEmptyMediaID),
		errors.Is(err, model.ErrInvalidUploader),
		errors.Is(err, model.ErrInvalidTelegramID),
		errors.Is(err, model.ErrEmptyFullName),
		errors.Is(err, model.ErrTitleTooLong),
		errors.Is(err, model.ErrNotPublishable),
		errors.Is(err, model.ErrEmptyTag),
		errors.Is(err, model.ErrTagTooLong),
		errors.Is(err, model.ErrSelfSubscription),
		errors.Is(err, usecase.ErrInvalidQuery),
		errors.Is(err, pagination.ErrInvalidCursor):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, filehost.ErrUpstreamUnavailable):
		Error(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
