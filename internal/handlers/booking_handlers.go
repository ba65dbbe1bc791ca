package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ms-booking/internal/booking"
	"ms-booking/internal/models"
)

// BookingHandler exposes the booking flow over HTTP.
type BookingHandler struct {
	orchestrator *booking.Orchestrator
}

func NewBookingHandler(orchestrator *booking.Orchestrator) *BookingHandler {
	return &BookingHandler{orchestrator: orchestrator}
}

// Book handles POST /events/{eventId}/book
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	var body struct {
		Name       string  `json:"name"`
		Phone      string  `json:"phone"`
		Tickets    int     `json:"tickets"`
		TotalPrice float64 `json:"totalPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("Error decoding booking request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req := models.BookingRequest{
		EventID:    eventID,
		Name:       body.Name,
		Phone:      body.Phone,
		Tickets:    body.Tickets,
		TotalPrice: body.TotalPrice,
	}

	booked, err := h.orchestrator.Book(r.Context(), req)
	if err != nil {
		h.writeBookingError(w, eventID, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booking confirmed",
		"booking": booked,
	})
}

// writeBookingError maps the booking error taxonomy onto HTTP statuses:
// validation 422, capacity 409, unknown event 404, everything else 502.
func (h *BookingHandler) writeBookingError(w http.ResponseWriter, eventID string, err error) {
	if ve, ok := booking.IsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotEnoughSpots):
		log.Printf("Booking rejected for event %s: %v", eventID, err)
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, models.ErrEventNotFound):
		http.Error(w, "Event not found", http.StatusNotFound)
	default:
		log.Printf("Booking failed for event %s: %v", eventID, err)
		http.Error(w, "Booking failed, please try again", http.StatusBadGateway)
	}
}
