package models

import "time"

// BookingRequest carries the user-entered fields of a booking attempt.
// It is ephemeral; only the resulting Booking row is persisted.
type BookingRequest struct {
	EventID    string  `json:"eventId"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Tickets    int     `json:"tickets"`
	TotalPrice float64 `json:"totalPrice"`
}

// Booking is a confirmed reservation of N tickets against an event.
type Booking struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Tickets    int       `json:"tickets"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}
