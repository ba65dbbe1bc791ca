package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ms-booking/internal/admin"
	"ms-booking/internal/models"
	"ms-booking/internal/uploads"
)

// Image uploads are limited to 10 MiB.
const maxUploadSize = 10 << 20

// AdminHandler exposes the create/edit/delete flow and image uploads.
type AdminHandler struct {
	service  *admin.Service
	uploader *uploads.Uploader
}

func NewAdminHandler(service *admin.Service, uploader *uploads.Uploader) *AdminHandler {
	return &AdminHandler{service: service, uploader: uploader}
}

// CreateEvent handles POST /admin/events
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var form admin.EventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Printf("Error decoding event form: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetEventForm handles GET /admin/events/{eventId}/form and prefills the
// edit form from the store, bypassing the cache.
func (h *AdminHandler) GetEventForm(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	form, err := h.service.Form(r.Context(), eventID)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// UpdateEvent handles PUT /admin/events/{eventId}
func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	var form admin.EventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Printf("Error decoding event form: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Update(r.Context(), eventID, form); err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event updated",
		"eventId": eventID,
	})
}

// DeleteEvent handles DELETE /admin/events/{eventId}
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	if err := h.service.Delete(r.Context(), eventID); err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event deleted",
		"eventId": eventID,
	})
}

// ListBookings handles GET /admin/events/{eventId}/bookings
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	bookings, err := h.service.Bookings(r.Context(), eventID)
	if err != nil {
		log.Printf("Error listing bookings for event %s: %v", eventID, err)
		http.Error(w, "Failed to list bookings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
	})
}

// UploadImage handles POST /admin/uploads (multipart form, field "image")
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		http.Error(w, "Image uploads not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("Error parsing upload form: %v", err)
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		log.Printf("Error uploading image %s: %v", header.Filename, err)
		http.Error(w, "Upload failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"url": url,
	})
}

func (h *AdminHandler) writeAdminError(w http.ResponseWriter, err error) {
	var fe *admin.FormError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": fe.Fields,
		})
		return
	}

	if errors.Is(err, models.ErrEventNotFound) {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	log.Printf("Admin mutation failed: %v", err)
	http.Error(w, "Operation failed", http.StatusInternalServerError)
}
