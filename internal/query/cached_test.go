package query_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aevon-lab/aevon-rules/internal/buffer"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	storagemocks "github.com/aevon-lab/aevon-rules/internal/mocks/storage"
	"github.com/aevon-lab/aevon-rules/internal/query"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*buffer.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return buffer.NewManager(buffer.NewRedisBackend(client)), mr
}

func TestCachedCountStore_MissThenFull(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)
	events := storagemocks.NewEventStore(t)
	store := query.NewCachedCountStore(query.NewColdStore(events), cache)

	c := cond("view", 3, split.Add(-48*time.Hour), split.Add(-time.Hour))

	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", map[string]string(nil), c.Window.Start, c.Window.End).
		Return(int64(4), nil).
		Once()

	ok, err := store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{c})
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := mr.Get(buffer.Key("dev-1", c.CacheID))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("4|%d,%d", c.Window.Start.UnixMilli(), c.Window.End.UnixMilli()), raw)

	// Same and narrower windows are now served from the cache; the mock
	// would fail on a second CountEvents call.
	ok, err = store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{c})
	require.NoError(t, err)
	require.True(t, ok)

	narrow := c.WithWindow(rule.Window{Start: c.Window.Start.Add(time.Hour), End: c.Window.End})
	ok, err = store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{narrow})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCachedCountStore_PartialQueriesOnlyTheRemainder(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)
	events := storagemocks.NewEventStore(t)
	store := query.NewCachedCountStore(query.NewColdStore(events), cache)

	start := split.Add(-48 * time.Hour)
	mid := split.Add(-24 * time.Hour)
	end := split.Add(-time.Hour)
	c := cond("view", 5, start, end)

	require.NoError(t, mr.Set(buffer.Key("dev-1", c.CacheID), fmt.Sprintf("3|%d,%d", start.UnixMilli(), mid.UnixMilli())))

	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", map[string]string(nil), mid, end).
		Return(int64(2), nil).
		Once()

	ok, err := store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{c})
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := mr.Get(buffer.Key("dev-1", c.CacheID))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("5|%d,%d", start.UnixMilli(), end.UnixMilli()), raw)
}

func TestCachedCountStore_CorruptEntryIsRecomputed(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)
	events := storagemocks.NewEventStore(t)
	store := query.NewCachedCountStore(query.NewColdStore(events), cache)

	c := cond("view", 1, split.Add(-48*time.Hour), split.Add(-time.Hour))
	require.NoError(t, mr.Set(buffer.Key("dev-1", c.CacheID), "garbage"))

	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", map[string]string(nil), c.Window.Start, c.Window.End).
		Return(int64(0), nil).
		Once()

	ok, err := store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{c})
	require.NoError(t, err)
	require.False(t, ok)

	raw, err := mr.Get(buffer.Key("dev-1", c.CacheID))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("0|%d,%d", c.Window.Start.UnixMilli(), c.Window.End.UnixMilli()), raw)
}

func TestCachedCountStore_CacheOutageDegradesToLiveStore(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)
	events := storagemocks.NewEventStore(t)
	store := query.NewCachedCountStore(query.NewColdStore(events), cache)

	c := cond("view", 2, split.Add(-48*time.Hour), split.Add(-time.Hour))
	mr.SetError("ERR injected failure")

	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", map[string]string(nil), c.Window.Start, c.Window.End).
		Return(int64(2), nil).
		Once()

	ok, err := store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{c})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCachedCountStore_StopsAtFirstUnmetCondition(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)
	events := storagemocks.NewEventStore(t)
	store := query.NewCachedCountStore(query.NewColdStore(events), cache)

	first := cond("view", 2, split.Add(-48*time.Hour), split.Add(-time.Hour))
	second := cond("cart", 1, split.Add(-48*time.Hour), split.Add(-time.Hour))

	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(1), nil).
		Once()

	ok, err := store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{first, second})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCachedCountStore_SequencePassesThrough(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)
	start := split.Add(-10 * time.Hour)
	store := query.NewCachedCountStore(query.NewColdStore(history(t,
		event("view", start.Add(time.Minute)),
	)), cache)

	ok, n, err := store.QuerySequence(ctx, "dev-1", nil, []rule.AtomicCondition{cond("view", 0, start, split)})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, n)
	require.Empty(t, mr.Keys())
}

func mustResolve(t *testing.T, doc string, at time.Time) rule.AtomicCondition {
	t.Helper()
	r, skip, err := rule.Parse([]byte(doc))
	require.NoError(t, err)
	require.False(t, skip)
	return r.Resolve(at).Counts[0]
}

func TestCachedCountStore_RulesSharingAConditionKeepSeparateEntries(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)
	events := storagemocks.NewEventStore(t)
	store := query.NewCachedCountStore(query.NewColdStore(events), cache)

	// Both rules count plain "view" events; only their lookbacks differ.
	daily := mustResolve(t, `
name: "daily_views"
trigger_event: "add_cart"
counts:
  - event_type: "view"
    threshold: 3
    lookback: "24h"
`, now)
	weekly := mustResolve(t, `
name: "weekly_views"
trigger_event: "add_cart"
counts:
  - event_type: "view"
    threshold: 1
    lookback: "7d"
`, now)
	require.Equal(t, daily.ID, weekly.ID)
	require.NotEqual(t, daily.CacheID, weekly.CacheID)

	// Ten views, all older than a day.
	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", map[string]string(nil), daily.Window.Start, daily.Window.End).
		Return(int64(0), nil).
		Once()
	events.EXPECT().
		CountEvents(mock.Anything, "dev-1", "view", map[string]string(nil), weekly.Window.Start, weekly.Window.End).
		Return(int64(10), nil).
		Once()

	ok, err := store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{daily})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{weekly})
	require.NoError(t, err)
	require.True(t, ok)

	// The weekly count must not answer the daily window.
	ok, err = store.QueryCount(ctx, "dev-1", nil, []rule.AtomicCondition{daily})
	require.NoError(t, err)
	require.False(t, ok)

	raw, err := mr.Get(buffer.Key("dev-1", daily.CacheID))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("0|%d,%d", daily.Window.Start.UnixMilli(), daily.Window.End.UnixMilli()), raw)
	raw, err = mr.Get(buffer.Key("dev-1", weekly.CacheID))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("10|%d,%d", weekly.Window.Start.UnixMilli(), weekly.Window.End.UnixMilli()), raw)
}
