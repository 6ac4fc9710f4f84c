package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

type TagHandler struct {
	tags usecase.TagService
}

func NewTagHandler(tags usecase.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type createTagRequest struct {
	Name string `json:"name"`
}

type tagResponse struct {
	Name string `json:"name"`
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	tag, err := h.tags.Create(r.Context(), req.Name)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, tagResponse{Name: tag.Name})
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		DomainError(w, err)
		return
	}

	resp := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, tagResponse{Name: tag.Name})
	}
	JSON(w, http.StatusOK, map[string]any{"tags": resp})
}
