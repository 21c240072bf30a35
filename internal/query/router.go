package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
)

// Router decides, per condition and per window, whether the hot store, the
// cold store or both answer a rule evaluation, and combines their answers.
//
// The router is stateless. The split point is derived from the now argument
// of each call and never from the system clock. The caller's RuleSpec is
// never modified; narrowed windows live on copies.
type Router struct {
	hot     Store
	cold    Store
	profile ProfileMatcher
}

// NewRouter wires the router to its collaborators.
func NewRouter(hot, cold Store, profile ProfileMatcher) *Router {
	if hot == nil || cold == nil || profile == nil {
		panic("query: router collaborators must not be nil")
	}
	return &Router{hot: hot, cold: cold, profile: profile}
}

// Groups is the partition of count conditions around a split point.
// Every condition lands in exactly one group.
type Groups struct {
	Far   []rule.AtomicCondition // End < split
	Near  []rule.AtomicCondition // Start >= split
	Cross []rule.AtomicCondition // Start < split <= End
}

// PartitionCounts sorts conds into far, near and cross relative to split.
func PartitionCounts(conds []rule.AtomicCondition, split time.Time) Groups {
	var g Groups
	for _, c := range conds {
		switch {
		case c.Window.End.Before(split):
			g.Far = append(g.Far, c)
		case !c.Window.Start.Before(split):
			g.Near = append(g.Near, c)
		default:
			g.Cross = append(g.Cross, c)
		}
	}
	return g
}

// ProfileQuery asks the profile collaborator and returns its answer unchanged.
func (r *Router) ProfileQuery(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec) (bool, error) {
	ok, err := r.profile.MatchesProfile(ctx, evt.DeviceID, spec.Profile)
	if err != nil {
		return false, unavailable(storeProfile, err)
	}
	return ok, nil
}

// CountConditionQuery reports whether every count condition of spec holds.
//
// Near conditions go to the hot store and far conditions to the cold store,
// one call each. A cross condition is first tried on the hot side of the split
// alone; only if that falls short is the cold side tried. The two halves are
// checked independently against the full threshold and never summed.
func (r *Router) CountConditionQuery(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec, state *hotstore.WindowState, now time.Time) (bool, error) {
	if err := validateWindows(spec.Counts); err != nil {
		return false, err
	}

	split := rule.SplitPoint(now)
	groups := PartitionCounts(spec.Counts, split)
	routedConditions.WithLabelValues("count", "near").Add(float64(len(groups.Near)))
	routedConditions.WithLabelValues("count", "far").Add(float64(len(groups.Far)))
	routedConditions.WithLabelValues("count", "cross").Add(float64(len(groups.Cross)))

	if len(groups.Near) > 0 {
		ok, err := r.hot.QueryCount(ctx, evt.DeviceID, state, groups.Near)
		if err != nil {
			return false, unavailable(storeHot, err)
		}
		if !ok {
			return false, nil
		}
	}

	if len(groups.Far) > 0 {
		ok, err := r.cold.QueryCount(ctx, evt.DeviceID, nil, groups.Far)
		if err != nil {
			return false, unavailable(storeCold, err)
		}
		if !ok {
			return false, nil
		}
	}

	for _, c := range groups.Cross {
		near := c.WithWindow(rule.Window{Start: split, End: c.Window.End})
		ok, err := r.hot.QueryCount(ctx, evt.DeviceID, state, []rule.AtomicCondition{near})
		if err != nil {
			return false, unavailable(storeHot, err)
		}
		if ok {
			continue
		}

		far := c.WithWindow(rule.Window{Start: c.Window.Start, End: split})
		ok, err = r.cold.QueryCount(ctx, evt.DeviceID, nil, []rule.AtomicCondition{far})
		if err != nil {
			return false, unavailable(storeCold, err)
		}
		if !ok {
			slog.Debug("[Router] Cross-split count condition not met on either side",
				"rule", spec.RuleName,
				"device_id", evt.DeviceID,
				"event_type", c.EventType,
				"split", split)
			return false, nil
		}
	}

	return true, nil
}

// SequenceConditionQuery reports whether the ordered steps of spec are
// matched. All steps share the window of the first step.
//
// A window entirely on one side of the split goes to that store once. A
// straddling window is settled in up to three calls: the hot side alone, then
// the cold side, which proves some leading steps, then the hot side again for
// the remaining suffix.
func (r *Router) SequenceConditionQuery(ctx context.Context, evt *v1.Event, spec *rule.RuleSpec, state *hotstore.WindowState, now time.Time) (bool, error) {
	steps := spec.Sequence
	if len(steps) == 0 {
		return true, nil
	}
	if err := validateWindows(steps); err != nil {
		return false, err
	}

	split := rule.SplitPoint(now)
	window := steps[0].Window
	total := len(steps)

	if !window.Start.Before(split) {
		routedConditions.WithLabelValues("sequence", "near").Add(float64(total))
		ok, _, err := r.hot.QuerySequence(ctx, evt.DeviceID, state, rule.WithSequenceWindow(steps, window))
		if err != nil {
			return false, unavailable(storeHot, err)
		}
		return ok, nil
	}

	if window.End.Before(split) {
		routedConditions.WithLabelValues("sequence", "far").Add(float64(total))
		ok, _, err := r.cold.QuerySequence(ctx, evt.DeviceID, nil, rule.WithSequenceWindow(steps, window))
		if err != nil {
			return false, unavailable(storeCold, err)
		}
		return ok, nil
	}

	routedConditions.WithLabelValues("sequence", "cross").Add(float64(total))
	nearWindow := rule.Window{Start: split, End: window.End}
	farWindow := rule.Window{Start: window.Start, End: split}

	ok, _, err := r.hot.QuerySequence(ctx, evt.DeviceID, state, rule.WithSequenceWindow(steps, nearWindow))
	if err != nil {
		return false, unavailable(storeHot, err)
	}
	if ok {
		sequenceFallbacks.WithLabelValues("hot_only").Inc()
		return true, nil
	}

	ok, farMaxStep, err := r.cold.QuerySequence(ctx, evt.DeviceID, nil, rule.WithSequenceWindow(steps, farWindow))
	if err != nil {
		return false, unavailable(storeCold, err)
	}
	if ok {
		sequenceFallbacks.WithLabelValues("cold_only").Inc()
		return true, nil
	}
	farMaxStep = clampSteps(farMaxStep, total)

	_, nearMaxStep, err := r.hot.QuerySequence(ctx, evt.DeviceID, state, rule.WithSequenceWindow(steps[farMaxStep:], nearWindow))
	if err != nil {
		return false, unavailable(storeHot, err)
	}
	nearMaxStep = clampSteps(nearMaxStep, total-farMaxStep)

	matched := farMaxStep+nearMaxStep >= total
	sequenceFallbacks.WithLabelValues("stitched").Inc()
	slog.Debug("[Router] Stitched sequence across split",
		"rule", spec.RuleName,
		"device_id", evt.DeviceID,
		"far_steps", farMaxStep,
		"near_steps", nearMaxStep,
		"total_steps", total,
		"matched", matched)
	return matched, nil
}

func validateWindows(conds []rule.AtomicCondition) error {
	for _, c := range conds {
		if err := c.Window.Validate(); err != nil {
			return fmt.Errorf("condition %q: %w", c.EventType, err)
		}
	}
	return nil
}

// clampSteps keeps a store-reported step count within [0, limit].
func clampSteps(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
