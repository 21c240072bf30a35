package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
)

// Querier answers the three condition groups of a rule. *query.Router
// implements it.
type Querier interface {
	ProfileQuery(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec) (bool, error)
	CountConditionQuery(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec, state *hotstore.WindowState, now time.Time) (bool, error)
	SequenceConditionQuery(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec, state *hotstore.WindowState, now time.Time) (bool, error)
}

// Match is emitted when every condition of a rule holds for a triggering event.
type Match struct {
	RuleName    string    `json:"rule_name"`
	Fingerprint string    `json:"rule_fingerprint"`
	DeviceID    string    `json:"device_id"`
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Evaluator runs the rules triggered by an event.
type Evaluator struct {
	byTrigger  map[string][]rule.Rule
	router     Querier
	eventTypes []string
}

// NewEvaluator indexes rules by trigger event type.
func NewEvaluator(rules []rule.Rule, router Querier) *Evaluator {
	if router == nil {
		panic("engine: router must not be nil")
	}
	byTrigger := make(map[string][]rule.Rule)
	seen := make(map[string]struct{})
	for _, r := range rules {
		byTrigger[r.TriggerEvent] = append(byTrigger[r.TriggerEvent], r)
		for _, c := range r.Counts {
			seen[c.EventType] = struct{}{}
		}
		for _, s := range r.Sequence.Steps {
			seen[s.EventType] = struct{}{}
		}
	}
	eventTypes := make([]string, 0, len(seen))
	for t := range seen {
		eventTypes = append(eventTypes, t)
	}
	sort.Strings(eventTypes)
	return &Evaluator{byTrigger: byTrigger, router: router, eventTypes: eventTypes}
}

// Triggers reports whether any rule fires on eventType.
func (e *Evaluator) Triggers(eventType string) bool {
	return len(e.byTrigger[eventType]) > 0
}

// EventTypes returns, sorted, every event type a count or sequence condition
// looks at. Events of other types never change a verdict.
func (e *Evaluator) EventTypes() []string {
	return e.eventTypes
}

// Evaluate checks every rule triggered by evt at now. A failing rule does not
// stop the others; their errors are joined.
func (e *Evaluator) Evaluate(ctx context.Context, evt *v1.Event, state *hotstore.WindowState, now time.Time) ([]Match, error) {
	var (
		matches []Match
		errs    []error
	)
	for _, r := range e.byTrigger[evt.Type] {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		spec := r.Resolve(now)
		ok, err := e.evaluateRule(ctx, evt, spec, state, now)
		if err != nil {
			evaluations.WithLabelValues(r.Name, "error").Inc()
			errs = append(errs, fmt.Errorf("rule %q: %w", r.Name, err))
			continue
		}
		if !ok {
			evaluations.WithLabelValues(r.Name, "no_match").Inc()
			continue
		}

		evaluations.WithLabelValues(r.Name, "match").Inc()
		matches = append(matches, Match{
			RuleName:    r.Name,
			Fingerprint: r.Fingerprint,
			DeviceID:    evt.DeviceID,
			EventID:     evt.ID,
			EventType:   evt.Type,
			OccurredAt:  evt.OccurredAt,
			EvaluatedAt: now,
		})
	}
	return matches, errors.Join(errs...)
}

// evaluateRule stops at the first condition group that does not hold.
func (e *Evaluator) evaluateRule(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec, state *hotstore.WindowState, now time.Time) (bool, error) {
	if len(spec.Profile) > 0 {
		ok, err := e.router.ProfileQuery(ctx, evt, spec)
		if err != nil || !ok {
			return false, err
		}
	}

	if len(spec.Counts) > 0 {
		ok, err := e.router.CountConditionQuery(ctx, evt, spec, state, now)
		if err != nil || !ok {
			return false, err
		}
	}

	if len(spec.Sequence) > 0 {
		ok, err := e.router.SequenceConditionQuery(ctx, evt, spec, state, now)
		if err != nil || !ok {
			return false, err
		}
	}

	slog.Debug("[Evaluator] Rule matched",
		"rule", spec.RuleName,
		"device_id", evt.DeviceID,
		"event_id", evt.ID)
	return true, nil
}
