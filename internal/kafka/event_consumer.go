package kafka

import (
	"context"
	"encoding/json"
	"log"

	"ms-booking/internal/config"
)

// Reloader is satisfied by the event cache.
type Reloader interface {
	InvalidateAndReload(ctx context.Context) error
}

// EventConsumer watches the CDC topic on the events table and reloads the
// cache whenever an event row changes outside this service (for example a
// direct database edit or another writer). The cache is always rebuilt in
// full; the change payload is only inspected to identify the row.
type EventConsumer struct {
	BaseConsumer
	Cache Reloader
}

// NewEventConsumer creates a consumer for event change notifications
func NewEventConsumer(cfg config.Config, cache Reloader) *EventConsumer {
	baseConsumer := NewBaseConsumer(cfg, cfg.KafkaURL, cfg.EventsKafkaTopic)

	return &EventConsumer{
		BaseConsumer: *baseConsumer,
		Cache:        cache,
	}
}

// StartConsuming starts consuming event change messages
func (c *EventConsumer) StartConsuming(ctx context.Context) error {
	log.Printf("Starting event change consumer for topic %s", c.Reader.Config().Topic)

	c.ConsumeMessages(ctx, func(value []byte) error {
		return c.processEventChange(ctx, value)
	})

	return nil
}

// processEventChange handles a single Debezium-style change message
func (c *EventConsumer) processEventChange(ctx context.Context, value []byte) error {
	var rawEvent struct {
		Payload struct {
			Before *struct {
				ID string `json:"id"`
			} `json:"before"`
			After *struct {
				ID string `json:"id"`
			} `json:"after"`
			Op string `json:"op"`
		} `json:"payload"`
	}

	if err := json.Unmarshal(value, &rawEvent); err != nil {
		log.Printf("Error unmarshalling event change data: %v", err)
		return err
	}

	eventID := ""
	if rawEvent.Payload.After != nil {
		eventID = rawEvent.Payload.After.ID
	} else if rawEvent.Payload.Before != nil {
		eventID = rawEvent.Payload.Before.ID
	}

	log.Printf("Event %s changed (op %s), reloading cache", eventID, rawEvent.Payload.Op)

	if err := c.Cache.InvalidateAndReload(ctx); err != nil {
		log.Printf("Error reloading cache after event change: %v", err)
		return err
	}

	return nil
}
