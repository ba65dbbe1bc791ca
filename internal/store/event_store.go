package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ms-booking/internal/models"
)

// EventStore is the authoritative owner of event and booking state. All
// capacity arithmetic happens here, inside transactions; callers only read
// snapshots and submit requests.
type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventColumns = `id, title, subtitle, start_date, start_time, end_date, end_time,
		spots, spots_left, price, price_child, price_family, price_old,
		location, meeting_point, guide, difficulty, duration, distance, route,
		included, expenses, faq, image_url, event_type, label, created_at, updated_at`

// ListEvents returns every event ordered by ascending start date and time.
func (s *EventStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  ORDER BY start_date ASC, start_time ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// GetEvent returns a single event by id.
func (s *EventStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &ev, nil
}

// CreateEvent inserts a new event and returns it with the assigned id.
func (s *EventStore) CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	ev.ID = uuid.NewString()
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	faq, err := marshalFAQ(ev.FAQ)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO events (id, title, subtitle, start_date, start_time, end_date, end_time,
				spots, spots_left, price, price_child, price_family, price_old,
				location, meeting_point, guide, difficulty, duration, distance, route,
				included, expenses, faq, image_url, event_type, label, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`

	_, err = s.db.ExecContext(ctx, query,
		ev.ID, ev.Title, nullStr(ev.Subtitle), ev.StartDate, ev.StartTime,
		nullStr(ev.EndDate), nullStr(ev.EndTime),
		ev.Spots, ev.SpotsLeft, ev.Price, ev.PriceChild, ev.PriceFamily, ev.PriceOld,
		nullStr(ev.Location), nullStr(ev.MeetingPoint), nullStr(ev.Guide),
		nullStr(ev.Difficulty), nullStr(ev.Duration), nullStr(ev.Distance), nullStr(ev.Route),
		pq.Array(ev.Included), pq.Array(ev.Expenses), faq,
		nullStr(ev.ImageURL), nullStr(ev.Type), nullStr(ev.Label),
		ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return &ev, nil
}

// UpdateEvent overwrites an existing event's descriptive fields, schedule,
// total capacity and pricing. spots_left is deliberately untouched: only the
// booking transaction may change it.
func (s *EventStore) UpdateEvent(ctx context.Context, id string, ev models.Event) error {
	faq, err := marshalFAQ(ev.FAQ)
	if err != nil {
		return err
	}

	query := `UPDATE events
			  SET title = $2, subtitle = $3, start_date = $4, start_time = $5,
				  end_date = $6, end_time = $7, spots = $8,
				  price = $9, price_child = $10, price_family = $11, price_old = $12,
				  location = $13, meeting_point = $14, guide = $15, difficulty = $16,
				  duration = $17, distance = $18, route = $19,
				  included = $20, expenses = $21, faq = $22,
				  image_url = $23, event_type = $24, label = $25, updated_at = $26
			  WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		id, ev.Title, nullStr(ev.Subtitle), ev.StartDate, ev.StartTime,
		nullStr(ev.EndDate), nullStr(ev.EndTime), ev.Spots,
		ev.Price, ev.PriceChild, ev.PriceFamily, ev.PriceOld,
		nullStr(ev.Location), nullStr(ev.MeetingPoint), nullStr(ev.Guide),
		nullStr(ev.Difficulty), nullStr(ev.Duration), nullStr(ev.Distance), nullStr(ev.Route),
		pq.Array(ev.Included), pq.Array(ev.Expenses), faq,
		nullStr(ev.ImageURL), nullStr(ev.Type), nullStr(ev.Label),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	return requireRow(res)
}

// DeleteEvent removes an event by id. Bookings for the event are removed by
// the schema's ON DELETE CASCADE, not by application code.
func (s *EventStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrEventNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var ev models.Event
	var subtitle, endDate, endTime sql.NullString
	var location, meetingPoint, guide, difficulty sql.NullString
	var duration, distance, route, imageURL, eventType, label sql.NullString
	var faq []byte

	err := row.Scan(
		&ev.ID, &ev.Title, &subtitle, &ev.StartDate, &ev.StartTime, &endDate, &endTime,
		&ev.Spots, &ev.SpotsLeft, &ev.Price, &ev.PriceChild, &ev.PriceFamily, &ev.PriceOld,
		&location, &meetingPoint, &guide, &difficulty, &duration, &distance, &route,
		pq.Array(&ev.Included), pq.Array(&ev.Expenses), &faq,
		&imageURL, &eventType, &label, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return models.Event{}, err
	}

	ev.Subtitle = subtitle.String
	ev.EndDate = endDate.String
	ev.EndTime = endTime.String
	ev.Location = location.String
	ev.MeetingPoint = meetingPoint.String
	ev.Guide = guide.String
	ev.Difficulty = difficulty.String
	ev.Duration = duration.String
	ev.Distance = distance.String
	ev.Route = route.String
	ev.ImageURL = imageURL.String
	ev.Type = eventType.String
	ev.Label = label.String

	if len(faq) > 0 {
		if err := json.Unmarshal(faq, &ev.FAQ); err != nil {
			return models.Event{}, fmt.Errorf("decode faq: %w", err)
		}
	}

	return ev, nil
}

func marshalFAQ(faq []models.FAQItem) ([]byte, error) {
	if len(faq) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(faq)
	if err != nil {
		return nil, fmt.Errorf("encode faq: %w", err)
	}
	return data, nil
}

// nullStr maps an empty string to SQL NULL so optional fields are stored as
// absent rather than as empty strings.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
