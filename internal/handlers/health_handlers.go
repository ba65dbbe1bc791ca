package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"ms-booking/internal/services"
)

// CatalogState exposes whether the event cache holds a loaded snapshot.
type CatalogState interface {
	Loaded() bool
}

// HealthHandler provides health check endpoints for readiness and liveness probes
type HealthHandler struct {
	dbService       *services.DatabaseService
	startTime       time.Time
	readinessChecks map[string]func() error
}

// HealthResponse is the probe response body
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Details   map[string]string `json:"details,omitempty"`
}

// NewHealthHandler creates a new health handler. Readiness requires the
// database connection and an initially-loaded event cache.
func NewHealthHandler(dbService *services.DatabaseService, catalog CatalogState) *HealthHandler {
	h := &HealthHandler{
		dbService:       dbService,
		startTime:       time.Now(),
		readinessChecks: make(map[string]func() error),
	}

	h.readinessChecks["database"] = dbService.CheckConnection
	h.readinessChecks["catalog"] = func() error {
		if !catalog.Loaded() {
			return errors.New("event cache not loaded yet")
		}
		return nil
	}

	return h
}

// HandleReadiness handles readiness probe requests
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	details := make(map[string]string)
	allOk := true

	for name, check := range h.readinessChecks {
		if err := check(); err != nil {
			allOk = false
			details[name] = err.Error()
		} else {
			details[name] = "OK"
		}
	}

	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).String(),
		Details:   details,
	}

	w.Header().Set("Content-Type", "application/json")
	if !allOk {
		response.Status = "DOWN"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// HandleLiveness handles liveness probe requests
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// HandleHealth handles general health check requests
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	// For simple kubernetes checks, just return OK
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
