package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ms-booking/internal/cache"
)

// EventHandler serves the public catalog from the event cache. It never
// queries the store directly; readers always see the latest full snapshot.
type EventHandler struct {
	cache *cache.EventCache
}

func NewEventHandler(eventCache *cache.EventCache) *EventHandler {
	return &EventHandler{cache: eventCache}
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.cache.Events()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

// GetEvent handles GET /events/{eventId}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	ev, ok := h.cache.Event(eventID)
	if !ok {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
