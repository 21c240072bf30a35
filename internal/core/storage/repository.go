package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
)

// ErrDuplicate is returned when an event with the same (device_id, id) already exists.
var ErrDuplicate = errors.New("event already exists")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// EventStore is the durable event history (the cold store).
// All windows are half-open: start <= occurred_at < end.
type EventStore interface {
	SaveEvent(ctx context.Context, event *v1.Event) error

	// DeleteEvent removes one archived event. Deleting a missing event is not
	// an error.
	DeleteEvent(ctx context.Context, deviceID, id string) error

	// CountEvents counts events of one type whose attributes contain attrs.
	CountEvents(ctx context.Context, deviceID, eventType string, attrs map[string]string, start, end time.Time) (int64, error)

	// ListEvents returns events of the given types in occurrence order.
	ListEvents(ctx context.Context, deviceID string, eventTypes []string, start, end time.Time) ([]*v1.Event, error)
}

// ProfileStore holds the static tags of each device.
type ProfileStore interface {
	// GetProfile returns ErrNotFound when the device has no profile.
	GetProfile(ctx context.Context, deviceID string) (map[string]string, error)

	// SaveProfile replaces the device's tags.
	SaveProfile(ctx context.Context, deviceID string, tags map[string]string) error
}
