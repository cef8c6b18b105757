package handlers

import (
	"net/http"
	"time"

	"github.com/koyeliyag-code/healthsync/internal/database"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health reports liveness. The service stays up without its store (the
// directory endpoint degrades by design), so a down database only marks the
// status degraded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	if database.Available(r.Context()) {
		response.Services["database"] = "healthy"
	} else {
		response.Services["database"] = "unhealthy"
		response.Status = "degraded"
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

// Ready reports whether the service can serve roster requests
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !database.Available(r.Context()) {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
