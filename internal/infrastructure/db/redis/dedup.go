package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// EventDeduper suppresses duplicate webhook deliveries by event id.
// Key format: webhook:event:<event_id>
type EventDeduper struct {
	client *redis.Client
}

// NewEventDeduper creates an EventDeduper wrapping the given Redis client.
func NewEventDeduper(client *redis.Client) *EventDeduper {
	return &EventDeduper{client: client}
}

// IsDuplicate reports whether this event id has already been processed.
func (d *EventDeduper) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *EventDeduper) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *EventDeduper) key(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}
