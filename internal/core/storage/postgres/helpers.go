package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
)

// marshalTags encodes a string map as a jsonb value.
// A nil or empty map becomes '{}' rather than SQL NULL so containment filters
// and NOT NULL constraints behave.
func marshalTags(tags map[string]string) ([]byte, error) {
	if len(tags) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}
	return b, nil
}

func unmarshalTags(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tags map[string]string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a database row into an Event struct.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.Event, error) {
	var evt v1.Event
	var attrsJSON []byte

	err := row.Scan(
		&evt.ID,
		&evt.DeviceID,
		&evt.Type,
		&evt.OccurredAt,
		&evt.IngestedAt,
		&attrsJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	evt.Attributes, err = unmarshalTags(attrsJSON)
	if err != nil {
		return nil, err
	}

	return &evt, nil
}
