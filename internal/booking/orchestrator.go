package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ms-booking/internal/models"
)

// Store is the slice of the event store the orchestrator needs: the one
// atomic booking procedure. Capacity checking and the decrement both live
// behind this call; the orchestrator never computes the transition itself.
type Store interface {
	BookEvent(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
}

// Cache is reloaded in full after every successful booking.
type Cache interface {
	Event(id string) (models.Event, bool)
	InvalidateAndReload(ctx context.Context) error
}

// Notifier forwards confirmed bookings to a downstream channel. Publishing is
// best-effort: a notification failure never fails the booking.
type Notifier interface {
	PublishBooking(ctx context.Context, b models.Booking) error
}

// ValidationError carries per-field messages for pre-flight failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

// Orchestrator validates booking requests locally for cheap, obviously
// invalid input, then delegates the capacity check and decrement to the
// store's atomic procedure.
type Orchestrator struct {
	store    Store
	cache    Cache
	notifier Notifier
}

func NewOrchestrator(store Store, cache Cache, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		store:    store,
		cache:    cache,
		notifier: notifier,
	}
}

// Validate checks a booking request against cheap local rules. The returned
// map is keyed by field name and empty when the request is valid. This is
// advisory only: the authoritative capacity check is the store's.
func Validate(req models.BookingRequest, maxSpots int) map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fieldErrors["phone"] = "phone is required"
	}
	if req.Tickets < 1 || req.Tickets > maxSpots {
		fieldErrors["tickets"] = fmt.Sprintf("tickets must be between 1 and %d", maxSpots)
	}

	return fieldErrors
}

// Book runs the full booking flow: local validation, the store's atomic
// reserve-and-decrement, then a full cache reload so the next read reflects
// the committed state. No local state is touched on failure and no retry is
// attempted.
func (o *Orchestrator) Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	maxSpots := req.Tickets // permissive bound when the event is not cached yet
	if ev, ok := o.cache.Event(req.EventID); ok {
		maxSpots = ev.SpotsLeft
	}

	if fieldErrors := Validate(req, maxSpots); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	booked, err := o.store.BookEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	// The cache is never decremented locally; reload replaces the snapshot
	// with whatever the store committed.
	if err := o.cache.InvalidateAndReload(ctx); err != nil {
		log.Printf("Cache reload after booking %s failed: %v", booked.ID, err)
	}

	if o.notifier != nil {
		if err := o.notifier.PublishBooking(ctx, *booked); err != nil {
			log.Printf("Failed to publish booking notification for %s: %v", booked.ID, err)
		}
	}

	return booked, nil
}

// IsValidation reports whether err is a pre-flight validation failure.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
