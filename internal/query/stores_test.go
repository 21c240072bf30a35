package query_test

import (
	"context"
	"testing"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
	querymocks "github.com/aevon-lab/aevon-rules/internal/mocks/query"
	storagemocks "github.com/aevon-lab/aevon-rules/internal/mocks/storage"
	"github.com/aevon-lab/aevon-rules/internal/query"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// history backs a mocked EventStore with a fixed event list.
func history(t *testing.T, events ...*v1.Event) *storagemocks.EventStore {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		CountEvents(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, deviceID, eventType string, attrs map[string]string, start, end time.Time) (int64, error) {
			var n int64
			w := rule.Window{Start: start, End: end}
			for _, e := range events {
				if e.DeviceID == deviceID && e.Type == eventType && e.HasAttributes(attrs) && w.Contains(e.OccurredAt) {
					n++
				}
			}
			return n, nil
		}).Maybe()
	store.EXPECT().
		ListEvents(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, deviceID string, types []string, start, end time.Time) ([]*v1.Event, error) {
			var out []*v1.Event
			w := rule.Window{Start: start, End: end}
			for _, e := range events {
				if e.DeviceID != deviceID || !w.Contains(e.OccurredAt) {
					continue
				}
				for _, typ := range types {
					if e.Type == typ {
						out = append(out, e)
						break
					}
				}
			}
			return out, nil
		}).Maybe()
	return store
}

func event(typ string, at time.Time) *v1.Event {
	return &v1.Event{ID: typ + at.Format(time.RFC3339), DeviceID: "dev-1", Type: typ, OccurredAt: at}
}

func matchAll(t *testing.T) *querymocks.ProfileMatcher {
	m := querymocks.NewProfileMatcher(t)
	m.EXPECT().MatchesProfile(mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Maybe()
	return m
}

func TestRouter_CrossHalvesAreNotSummed(t *testing.T) {
	state := hotstore.NewWindowState("dev-1")
	state.Append(event("view", split.Add(time.Minute)))
	state.Append(event("view", split.Add(2*time.Minute)))

	cold := history(t,
		event("view", split.Add(-2*time.Minute)),
		event("view", split.Add(-time.Minute)),
	)
	router := query.NewRouter(hotstore.NewStore(), query.NewColdStore(cold), matchAll(t))

	spec := &rule.RuleSpec{Counts: []rule.AtomicCondition{
		cond("view", 3, split.Add(-time.Hour), now),
	}}

	// Two events on each side; neither side alone reaches three.
	ok, err := router.CountConditionQuery(context.Background(), evt(), spec, state, now)
	require.NoError(t, err)
	require.False(t, ok)

	spec.Counts[0].Threshold = 2
	ok, err = router.CountConditionQuery(context.Background(), evt(), spec, state, now)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRouter_SequenceStitchedFromRealStores(t *testing.T) {
	state := hotstore.NewWindowState("dev-1")
	state.Append(event("pay", split.Add(10*time.Minute)))

	cold := history(t,
		event("view", split.Add(-3*time.Hour)),
		event("cart", split.Add(-2*time.Hour)),
	)
	router := query.NewRouter(hotstore.NewStore(), query.NewColdStore(cold), matchAll(t))

	start := split.Add(-24 * time.Hour)
	spec := &rule.RuleSpec{Sequence: []rule.AtomicCondition{
		cond("view", 0, start, now),
		cond("cart", 0, start, now),
		cond("pay", 0, start, now),
	}}

	ok, err := router.SequenceConditionQuery(context.Background(), evt(), spec, state, now)
	require.NoError(t, err)
	require.True(t, ok)

	// Out of order across the split: pay happened before cart.
	spec.Sequence[1], spec.Sequence[2] = spec.Sequence[2], spec.Sequence[1]
	ok, err = router.SequenceConditionQuery(context.Background(), evt(), spec, state, now)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRouter_Idempotent(t *testing.T) {
	state := hotstore.NewWindowState("dev-1")
	state.Append(event("view", split.Add(time.Minute)))
	state.Append(event("cart", split.Add(5*time.Minute)))

	cold := history(t,
		event("view", split.Add(-5*time.Hour)),
		event("view", split.Add(-4*time.Hour)),
	)
	router := query.NewRouter(hotstore.NewStore(), query.NewColdStore(cold), matchAll(t))

	start := split.Add(-24 * time.Hour)
	spec := &rule.RuleSpec{
		Counts: []rule.AtomicCondition{
			cond("view", 2, start, split.Add(-time.Hour)),
			cond("view", 1, split, now),
			cond("cart", 1, start, now),
		},
		Sequence: []rule.AtomicCondition{
			cond("view", 0, start, now),
			cond("cart", 0, start, now),
		},
	}

	for i := 0; i < 3; i++ {
		ok, err := router.CountConditionQuery(context.Background(), evt(), spec, state, now)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = router.SequenceConditionQuery(context.Background(), evt(), spec, state, now)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestColdStore_QuerySequenceReportsLeadingSteps(t *testing.T) {
	base := split.Add(-10 * time.Hour)
	cold := query.NewColdStore(history(t,
		event("view", base.Add(time.Minute)),
		event("cart", base.Add(2*time.Minute)),
	))

	steps := []rule.AtomicCondition{
		cond("view", 0, base, split),
		cond("cart", 0, base, split),
		cond("pay", 0, base, split),
	}

	ok, n, err := cold.QuerySequence(context.Background(), "dev-1", nil, steps)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 2, n)

	ok, n, err = cold.QuerySequence(context.Background(), "dev-1", nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, n)
}
