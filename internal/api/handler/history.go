package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

type HistoryHandler struct {
	history usecase.HistoryService
}

func NewHistoryHandler(history usecase.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type recordWatchRequest struct {
	MediaID string `json:"media_id"`
}

type historyEntryResponse struct {
	Video     videoResponse `json:"video"`
	WatchedAt time.Time     `json:"watched_at"`
}

type historyPageResponse struct {
	Entries    []historyEntryResponse `json:"entries"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

func (h *HistoryHandler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "user ID must be an integer")
		return
	}

	var req recordWatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.history.RecordWatch(r.Context(), userID, req.MediaID); err != nil {
		DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "user ID must be an integer")
		return
	}

	page, err := h.history.ListByUser(r.Context(), userID, r.URL.Query().Get("cursor"), intQuery(r, "page_size"))
	if err != nil {
		DomainError(w, err)
		return
	}

	resp := historyPageResponse{
		Entries:    make([]historyEntryResponse, 0, len(page.Entries)),
		NextCursor: page.NextCursor,
	}
	for _, entry := range page.Entries {
		resp.Entries = append(resp.Entries, historyEntryResponse{
			Video:     toVideoResponse(entry.Video),
			WatchedAt: entry.WatchedAt,
		})
	}
	JSON(w, http.StatusOK, resp)
}
