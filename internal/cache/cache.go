package cache

import (
	"context"
	"log"
	"sync"

	"ms-booking/internal/models"
)

// EventSource is the slice of the store the cache reads from.
type EventSource interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// EventCache holds the most recently fetched full snapshot of all events.
// It is the only shared mutable client-side state: the snapshot is replaced
// wholesale on every reload and never patched field-by-field, so readers can
// never observe a locally-predicted capacity value. Last completed reload
// wins when reloads race; that is fine because every reload is a full,
// idempotent replacement.
type EventCache struct {
	source EventSource

	mu     sync.RWMutex
	events []models.Event
	byID   map[string]models.Event
	loaded bool
}

func New(source EventSource) *EventCache {
	return &EventCache{
		source: source,
		byID:   make(map[string]models.Event),
	}
}

// Load fetches all events ordered by start date, derives the optional price
// fields and atomically replaces the snapshot. On error the previous snapshot
// is kept untouched (stale but consistent).
func (c *EventCache) Load(ctx context.Context) error {
	events, err := c.source.ListEvents(ctx)
	if err != nil {
		log.Printf("Event cache reload failed, keeping previous snapshot: %v", err)
		return err
	}

	mapped := make([]models.Event, len(events))
	byID := make(map[string]models.Event, len(events))
	for i, ev := range events {
		mapped[i] = ev.Derived()
		byID[ev.ID] = mapped[i]
	}

	c.mu.Lock()
	c.events = mapped
	c.byID = byID
	c.loaded = true
	c.mu.Unlock()

	log.Printf("Event cache reloaded with %d events", len(mapped))
	return nil
}

// InvalidateAndReload is called after every mutation. It is a full reload,
// never a partial patch.
func (c *EventCache) InvalidateAndReload(ctx context.Context) error {
	return c.Load(ctx)
}

// Events returns a copy of the current snapshot in catalog order.
func (c *EventCache) Events() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Loaded reports whether at least one full load has completed.
func (c *EventCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Event looks up a single event from the snapshot.
func (c *EventCache) Event(id string) (models.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ev, ok := c.byID[id]
	return ev, ok
}
