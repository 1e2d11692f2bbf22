// Package healthprobe provides liveness and readiness handlers for the
// daemon mode HTTP server.
package healthprobe

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// HealthChecker tracks per-component readiness. The process is ready
// once every registered component has reported ready.
type HealthChecker struct {
	startTime time.Time

	mu         sync.RWMutex
	components map[string]bool
}

// New creates a new HealthChecker.
func New() *HealthChecker {
	return &HealthChecker{
		startTime:  time.Now(),
		components: make(map[string]bool),
	}
}

// Register adds a component in the not-ready state.
func (h *HealthChecker) Register(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[name] = false
}

// SetReady records a component's readiness.
func (h *HealthChecker) SetReady(name string, ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[name] = ready
}

// ready reports overall readiness and the names of components that are
// still pending.
func (h *HealthChecker) readiness() (bool, []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var pending []string
	for name, ready := range h.components {
		if !ready {
			pending = append(pending, name)
		}
	}
	sort.Strings(pending)
	return len(pending) == 0, pending
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string   `json:"status"`
	Uptime  string   `json:"uptime"`
	Pending []string `json:"pending,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the process is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status: "healthy",
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK when every registered component is ready, otherwise
// 503 with the pending component names.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready, pending := h.readiness()

		resp := HealthResponse{
			Status:  "ready",
			Uptime:  time.Since(h.startTime).String(),
			Pending: pending,
		}
		status := http.StatusOK
		if !ready {
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
