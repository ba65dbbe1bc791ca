package admin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ms-booking/internal/models"
)

// Store is the slice of the event store the admin flow works through.
type Store interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, ev models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListBookings(ctx context.Context, eventID string) ([]models.Booking, error)
}

// Cache is reloaded in full after every successful mutation.
type Cache interface {
	InvalidateAndReload(ctx context.Context) error
}

// Service translates the denormalized admin-form shape into the store's
// normalized shape, delegates persistence, and keeps the cache coherent.
type Service struct {
	store Store
	cache Cache
}

func NewService(store Store, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

// ValidateForm checks required-field presence only; business correctness is
// the store's responsibility.
func ValidateForm(form EventForm) map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(form.Title) == "" {
		fieldErrors["title"] = "title is required"
	}
	if strings.TrimSpace(form.StartDate) == "" {
		fieldErrors["startDate"] = "start date is required"
	}
	if form.Spots < 0 {
		fieldErrors["spots"] = "spots must not be negative"
	}
	if form.Price <= 0 {
		fieldErrors["price"] = "price must be positive"
	}

	return fieldErrors
}

// Create persists a new event. Remaining capacity is seeded equal to total
// capacity; nothing has been booked yet.
func (s *Service) Create(ctx context.Context, form EventForm) (*models.Event, error) {
	if fieldErrors := ValidateForm(form); len(fieldErrors) > 0 {
		return nil, &FormError{Fields: fieldErrors}
	}

	ev := form.Decode()
	ev.SpotsLeft = ev.Spots

	created, err := s.store.CreateEvent(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.reload(ctx)
	return created, nil
}

// Update overwrites an event's editable fields. SpotsLeft is not part of the
// form and the store leaves it untouched.
func (s *Service) Update(ctx context.Context, id string, form EventForm) error {
	if fieldErrors := ValidateForm(form); len(fieldErrors) > 0 {
		return &FormError{Fields: fieldErrors}
	}

	if err := s.store.UpdateEvent(ctx, id, form.Decode()); err != nil {
		return err
	}

	s.reload(ctx)
	return nil
}

// Delete removes an event. The store cascades booking cleanup.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.reload(ctx)
	return nil
}

// Form reads an event fresh from the store and renders it in the flat edit
// form shape.
func (s *Service) Form(ctx context.Context, id string) (*EventForm, error) {
	ev, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	form := FormFromEvent(*ev)
	return &form, nil
}

// Bookings lists reservations recorded for an event.
func (s *Service) Bookings(ctx context.Context, eventID string) ([]models.Booking, error) {
	return s.store.ListBookings(ctx, eventID)
}

func (s *Service) reload(ctx context.Context) {
	if err := s.cache.InvalidateAndReload(ctx); err != nil {
		log.Printf("Cache reload after admin mutation failed: %v", err)
	}
}

// FormError carries per-field messages for an invalid admin form.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("invalid form: %d invalid fields", len(e.Fields))
}
