package models

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")

	// ErrNotEnoughSpots is reported by the store when a booking would exceed
	// the event's remaining capacity. The check lives inside the booking
	// transaction; callers never re-derive it from cached state.
	ErrNotEnoughSpots = errors.New("not enough spots left")
)
