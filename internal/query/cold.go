package query

import (
	"context"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
)

// ColdStore answers queries from the durable event history.
type ColdStore struct {
	events storage.EventStore
}

// NewColdStore adapts an event store to the Store interface.
func NewColdStore(events storage.EventStore) *ColdStore {
	return &ColdStore{events: events}
}

// CountWindow counts events matching cond inside cond.Window.
func (s *ColdStore) CountWindow(ctx context.Context, deviceID string, cond rule.AtomicCondition) (int64, error) {
	return s.events.CountEvents(ctx, deviceID, cond.EventType, cond.Attributes, cond.Window.Start, cond.Window.End)
}

// QueryCount issues one count per condition and stops at the first that falls
// short. The hot state argument is ignored.
func (s *ColdStore) QueryCount(ctx context.Context, deviceID string, _ *hotstore.WindowState, conds []rule.AtomicCondition) (bool, error) {
	for _, c := range conds {
		n, err := s.CountWindow(ctx, deviceID, c)
		if err != nil {
			return false, err
		}
		if n < c.Threshold {
			return false, nil
		}
	}
	return true, nil
}

// QuerySequence loads the candidate events once and matches the steps in
// memory. The hot state argument is ignored.
func (s *ColdStore) QuerySequence(ctx context.Context, deviceID string, _ *hotstore.WindowState, conds []rule.AtomicCondition) (bool, int, error) {
	if len(conds) == 0 {
		return true, 0, nil
	}

	span := rule.Span(conds)
	events, err := s.events.ListEvents(ctx, deviceID, rule.EventTypes(conds), span.Start, span.End)
	if err != nil {
		return false, 0, err
	}

	matched := rule.MatchSequence(events, conds)
	return matched == len(conds), matched, nil
}
