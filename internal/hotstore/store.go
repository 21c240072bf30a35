package hotstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
)

// ErrNoState is returned when a hot query is issued without the device's state.
var ErrNoState = errors.New("hot window state not provided")

// Store answers count and sequence queries from the in-process window state.
// It holds nothing itself; every call works on the state it is handed.
type Store struct{}

// NewStore returns a hot store.
func NewStore() *Store {
	return &Store{}
}

// QueryCount reports whether every condition reaches its threshold inside its
// own window.
func (s *Store) QueryCount(ctx context.Context, deviceID string, state *WindowState, conds []rule.AtomicCondition) (bool, error) {
	if err := checkState(ctx, deviceID, state); err != nil {
		return false, err
	}
	for _, c := range conds {
		if state.Count(c) < c.Threshold {
			return false, nil
		}
	}
	return true, nil
}

// QuerySequence reports whether conds are matched in order and how many
// leading steps were matched.
func (s *Store) QuerySequence(ctx context.Context, deviceID string, state *WindowState, conds []rule.AtomicCondition) (bool, int, error) {
	if err := checkState(ctx, deviceID, state); err != nil {
		return false, 0, err
	}
	if len(conds) == 0 {
		return true, 0, nil
	}
	matched := rule.MatchSequence(state.Between(rule.Span(conds)), conds)
	return matched == len(conds), matched, nil
}

func checkState(ctx context.Context, deviceID string, state *WindowState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if state == nil {
		return ErrNoState
	}
	if state.deviceID != deviceID {
		return fmt.Errorf("hot state belongs to device %q, queried for %q", state.deviceID, deviceID)
	}
	return nil
}
