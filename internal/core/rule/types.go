package rule

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
)

// AtomicCondition is one clause of a rule.
// Count-kind conditions use Threshold; sequence-kind conditions are positional
// (their index in RuleSpec.Sequence is the required order).
type AtomicCondition struct {
	ID         string            // stable identity: event type + attribute filter
	CacheID    string            // ID scoped to the owning rule and window spec; keys the window cache
	EventType  string            // target event type
	Attributes map[string]string // optional attribute filter, all must match
	Threshold  int64             // count-kind only: required count within Window
	Window     Window
}

// Matches reports whether evt is the kind of event this condition counts.
// The window is not checked.
func (c AtomicCondition) Matches(evt *v1.Event) bool {
	return evt.Type == c.EventType && evt.HasAttributes(c.Attributes)
}

// WithWindow returns a copy of c narrowed to w.
func (c AtomicCondition) WithWindow(w Window) AtomicCondition {
	c.Window = w
	return c
}

// RuleSpec is the per-evaluation working copy of a rule: every window is
// concrete. It is built by Rule.Resolve and discarded after the evaluation.
type RuleSpec struct {
	RuleName    string
	Fingerprint string
	Profile     []ProfileCondition
	Counts      []AtomicCondition
	Sequence    []AtomicCondition
}

// Validate rejects any condition whose window start is after its end.
func (s *RuleSpec) Validate() error {
	for _, c := range s.Counts {
		if err := c.Window.Validate(); err != nil {
			return fmt.Errorf("count condition %q: %w", c.EventType, err)
		}
	}
	for i, c := range s.Sequence {
		if err := c.Window.Validate(); err != nil {
			return fmt.Errorf("sequence step %d %q: %w", i+1, c.EventType, err)
		}
	}
	return nil
}

// WithSequenceWindow returns a copy of conds with every window set to w.
func WithSequenceWindow(conds []AtomicCondition, w Window) []AtomicCondition {
	out := make([]AtomicCondition, len(conds))
	for i, c := range conds {
		out[i] = c.WithWindow(w)
	}
	return out
}

// ConditionID derives the stable identity of a condition from its event type
// and attribute filter. Attribute order does not matter.
func ConditionID(eventType string, attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(eventType)
	for _, k := range keys {
		b.WriteString("\x00")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(attrs[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum[:8])
}

// CacheID scopes a condition id to the rule that owns it and to the window
// spec it is evaluated over. Two rules counting the same events over different
// lookbacks get different ids, so a cached count is only ever reused for the
// window family it was computed for.
func CacheID(ruleName, conditionID string, w WindowSpec) string {
	sum := sha256.Sum256([]byte(ruleName + "\x00" + conditionID + "\x00" + w.String()))
	return fmt.Sprintf("%x", sum[:8])
}

// Span returns the smallest window containing every condition's window.
// conds must not be empty.
func Span(conds []AtomicCondition) Window {
	span := conds[0].Window
	for _, c := range conds[1:] {
		if c.Window.Start.Before(span.Start) {
			span.Start = c.Window.Start
		}
		if c.Window.End.After(span.End) {
			span.End = c.Window.End
		}
	}
	return span
}

// EventTypes returns the distinct event types of conds in first-seen order.
func EventTypes(conds []AtomicCondition) []string {
	seen := make(map[string]struct{}, len(conds))
	var out []string
	for _, c := range conds {
		if _, ok := seen[c.EventType]; ok {
			continue
		}
		seen[c.EventType] = struct{}{}
		out = append(out, c.EventType)
	}
	return out
}
