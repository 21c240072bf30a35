package v1

import (
	"fmt"
	"time"
)

// Event is one observed action of a device.
// Events are immutable once observed; rule evaluation only reads them.
type Event struct {
	// ID is the client-supplied identifier. Unique per DeviceID.
	// Ingestion assigns a UUID when the client leaves it empty.
	ID string `json:"id"`

	// DeviceID is the key every piece of state hangs off: hot window,
	// cold history, profile and cache entries.
	DeviceID string `json:"device_id"`

	// Type is the event name (e.g. "view_item", "add_cart").
	// Rule conditions match on it.
	Type string `json:"type"`

	// OccurredAt is the client-side time of the action.
	OccurredAt time.Time `json:"occurred_at"`

	// IngestedAt is set by ingestion, never by the client.
	IngestedAt time.Time `json:"ingested_at"`

	// Attributes carry optional event properties used by attribute filters
	// (e.g. {"category": "shoes"}).
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Validate ensures the event has all required attributes.
func (e *Event) Validate() error {
	if e.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}

	if e.Type == "" {
		return fmt.Errorf("type is required")
	}

	if e.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}

	return nil
}

// HasAttributes reports whether every key/value pair in filter is present on the event.
// An empty filter matches everything.
func (e *Event) HasAttributes(filter map[string]string) bool {
	for k, want := range filter {
		if got, ok := e.Attributes[k]; !ok || got != want {
			return false
		}
	}
	return true
}
