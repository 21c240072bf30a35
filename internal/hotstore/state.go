package hotstore

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
)

// MinRetention is the shortest retention that still covers the hot side of
// every split: the split lag plus the current, partially elapsed hour.
const MinRetention = rule.SplitLag + time.Hour

// WindowState is the recent event history of one device, ordered by
// OccurredAt. It is owned by a single worker and is not safe for concurrent use.
type WindowState struct {
	deviceID string
	events   []*v1.Event
	ids      map[string]struct{}
}

// NewWindowState creates an empty state for deviceID.
func NewWindowState(deviceID string) *WindowState {
	return &WindowState{deviceID: deviceID, ids: make(map[string]struct{})}
}

// DeviceID returns the device this state belongs to.
func (s *WindowState) DeviceID() string {
	return s.deviceID
}

// Append inserts evt in time order. Events sharing a timestamp keep their
// arrival order. An event whose id is already retained is ignored and Append
// returns false.
func (s *WindowState) Append(evt *v1.Event) bool {
	if evt.ID != "" {
		if _, ok := s.ids[evt.ID]; ok {
			return false
		}
		s.ids[evt.ID] = struct{}{}
	}

	n := len(s.events)
	if n == 0 || !evt.OccurredAt.Before(s.events[n-1].OccurredAt) {
		s.events = append(s.events, evt)
		return true
	}

	// Late arrival: find the first event strictly after evt.
	i := sort.Search(n, func(i int) bool {
		return s.events[i].OccurredAt.After(evt.OccurredAt)
	})
	s.events = append(s.events, nil)
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = evt
	return true
}

// Prune drops every event that occurred before cutoff and returns how many
// were removed.
func (s *WindowState) Prune(cutoff time.Time) int {
	i := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].OccurredAt.Before(cutoff)
	})
	if i == 0 {
		return 0
	}
	for _, evt := range s.events[:i] {
		delete(s.ids, evt.ID)
	}
	// Copy into a fresh slice so the pruned prefix can be collected.
	s.events = append([]*v1.Event(nil), s.events[i:]...)
	return i
}

// Len returns the number of retained events.
func (s *WindowState) Len() int {
	return len(s.events)
}

// Events returns the retained events in time order. The slice is shared;
// callers must not modify it.
func (s *WindowState) Events() []*v1.Event {
	return s.events
}

// Between returns the events inside the half-open window w.
func (s *WindowState) Between(w rule.Window) []*v1.Event {
	lo := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].OccurredAt.Before(w.Start)
	})
	hi := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].OccurredAt.Before(w.End)
	})
	if lo >= hi {
		return nil
	}
	return s.events[lo:hi]
}

// Count returns how many retained events satisfy cond inside cond.Window.
func (s *WindowState) Count(cond rule.AtomicCondition) int64 {
	var n int64
	for _, evt := range s.Between(cond.Window) {
		if cond.Matches(evt) {
			n++
		}
	}
	return n
}
