package projection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/query"
)

// ErrInvalidQuery marks a condition state request that cannot be answered.
var ErrInvalidQuery = errors.New("invalid condition state query")

// Service is a read-only view over loaded rules and the archived counts
// behind their count conditions. It does not evaluate rules and never touches
// hot state.
type Service struct {
	rules   rule.Repository
	counter query.WindowCounter
	now     func() time.Time
}

// NewService creates the projection service. counter is normally the cold
// store, so counts cover the full archived window.
func NewService(rules rule.Repository, counter query.WindowCounter) *Service {
	if rules == nil {
		panic("projection: rule repository must not be nil")
	}
	if counter == nil {
		panic("projection: counter must not be nil")
	}
	return &Service{rules: rules, counter: counter, now: time.Now}
}

// ListRules returns the loaded rules sorted by name, optionally filtered by
// trigger event type.
func (s *Service) ListRules(ctx context.Context, triggerEvent string) ([]RuleSummary, error) {
	rules, err := s.rules.List(ctx, triggerEvent)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	out := make([]RuleSummary, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleSummary{
			Name:          r.Name,
			TriggerEvent:  r.TriggerEvent,
			Fingerprint:   r.Fingerprint,
			ProfileChecks: len(r.Profile),
			CountChecks:   len(r.Counts),
			SequenceSteps: len(r.Sequence.Steps),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// QueryConditions resolves the rule at req.At and counts every count
// condition over its full window.
func (s *Service) QueryConditions(ctx context.Context, req ConditionStateRequest) (*ConditionStateResponse, error) {
	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()

	r, err := s.rules.Get(ctx, req.Rule)
	if err != nil {
		return nil, err
	}

	spec := r.Resolve(at)
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	resp := &ConditionStateResponse{
		DeviceID:   req.DeviceID,
		Rule:       r.Name,
		At:         at,
		SplitPoint: rule.SplitPoint(at),
		Conditions: make([]ConditionState, 0, len(spec.Counts)),
	}
	for _, c := range spec.Counts {
		n, err := s.counter.CountWindow(ctx, req.DeviceID, c)
		if err != nil {
			return nil, fmt.Errorf("counting %q: %w", c.EventType, err)
		}
		resp.Conditions = append(resp.Conditions, ConditionState{
			ConditionID: c.ID,
			EventType:   c.EventType,
			Attributes:  c.Attributes,
			Start:       c.Window.Start,
			End:         c.Window.End,
			Threshold:   c.Threshold,
			Count:       n,
			Met:         n >= c.Threshold,
		})
	}
	return resp, nil
}
