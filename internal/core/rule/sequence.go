package rule

import v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"

// MatchSequence returns how many leading steps are satisfied, in order, by events.
// events must be in chronological order. Step i only advances on an event that
// matches it and falls inside step i's window; matching is greedy.
func MatchSequence(events []*v1.Event, steps []AtomicCondition) int {
	matched := 0
	for _, evt := range events {
		if matched == len(steps) {
			break
		}
		step := steps[matched]
		if step.Window.Contains(evt.OccurredAt) && step.Matches(evt) {
			matched++
		}
	}
	return matched
}
