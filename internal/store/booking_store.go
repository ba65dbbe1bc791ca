package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-booking/internal/models"
)

// BookEvent reserves tickets against an event as one indivisible transaction:
// the event row is locked, remaining capacity is checked, and only then is the
// decrement applied and the booking recorded. Two concurrent bookings whose
// combined ticket counts exceed the remaining spots can never both commit.
func (s *EventStore) BookEvent(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var spotsLeft int
	spotQuery := `SELECT spots_left FROM events WHERE id = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, spotQuery, req.EventID).Scan(&spotsLeft); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("get spots left: %w", err)
	}

	if spotsLeft < req.Tickets {
		return nil, models.ErrNotEnoughSpots
	}

	updateQuery := `UPDATE events
					SET spots_left = spots_left - $2, updated_at = NOW()
					WHERE id = $1`
	if _, err = tx.ExecContext(ctx, updateQuery, req.EventID, req.Tickets); err != nil {
		return nil, fmt.Errorf("decrement spots: %w", err)
	}

	// Total price is accepted as submitted (the form computes it from the
	// unit price); only an outright negative value is clamped.
	total := req.TotalPrice
	if total < 0 {
		total = 0
	}

	booking := models.Booking{
		ID:         uuid.NewString(),
		EventID:    req.EventID,
		Name:       req.Name,
		Phone:      req.Phone,
		Tickets:    req.Tickets,
		TotalPrice: total,
		CreatedAt:  time.Now().UTC(),
	}

	insertQuery := `INSERT INTO bookings (id, event_id, name, phone, tickets, total_price, created_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.ExecContext(ctx, insertQuery,
		booking.ID, booking.EventID, booking.Name, booking.Phone,
		booking.Tickets, booking.TotalPrice, booking.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	return &booking, nil
}

// ListBookings returns the bookings recorded for an event, newest first.
func (s *EventStore) ListBookings(ctx context.Context, eventID string) ([]models.Booking, error) {
	query := `SELECT id, event_id, name, phone, tickets, total_price, created_at
			  FROM bookings
			  WHERE event_id = $1
			  ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err = rows.Scan(&b.ID, &b.EventID, &b.Name, &b.Phone, &b.Tickets, &b.TotalPrice, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
