package handler

import (
	"context"
	"net/http"
)

// Pinger checks reachability of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status string            `json:"status"`
	Deps   map[string]string `json:"deps,omitempty"`
}

// Live reports process liveness.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready reports whether every backing store answers a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Deps: make(map[string]string, len(h.deps))}
	status := http.StatusOK

	for name, dep := range h.deps {
		if err := dep.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Deps[name] = "ok"
	}
	JSON(w, status, resp)
}
