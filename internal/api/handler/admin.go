package handler

import (
	"net/http"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

type AdminHandler struct {
	queue repository.MessageQueue
}

func NewAdminHandler(queue repository.MessageQueue) *AdminHandler {
	return &AdminHandler{queue: queue}
}

// TriggerRenewal enqueues an out-of-schedule link renewal sweep. The
// worker picks the task up asynchronously.
func (h *AdminHandler) TriggerRenewal(w http.ResponseWriter, r *http.Request) {
	task := repository.RenewalTask{
		RequestedAt: time.Now(),
		Reason:      "manual",
	}
	if err := h.queue.PublishRenewalTask(r.Context(), task); err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "failed to enqueue renewal")
		return
	}
	JSON(w, http.StatusAccepted, map[string]string{"status": "enqueued"})
}
