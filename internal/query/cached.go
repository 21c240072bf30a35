package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aevon-lab/aevon-rules/internal/buffer"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
)

// WindowCounter counts one condition over its window.
type WindowCounter interface {
	CountWindow(ctx context.Context, deviceID string, cond rule.AtomicCondition) (int64, error)
}

// CountingStore is a Store that can also return raw window counts.
type CountingStore interface {
	Store
	WindowCounter
}

// CountCache is the subset of buffer.Manager the cached store needs.
type CountCache interface {
	Get(ctx context.Context, key string, requested rule.Window, threshold int64) (buffer.Result, error)
	Put(ctx context.Context, key string, count int64, w rule.Window) error
}

// CachedCountStore puts the window cache in front of a live store for count
// queries. Every count it has to compute is written back. Sequence queries
// pass straight through.
type CachedCountStore struct {
	live  CountingStore
	cache CountCache
}

// NewCachedCountStore wraps live with cache.
func NewCachedCountStore(live CountingStore, cache CountCache) *CachedCountStore {
	return &CachedCountStore{live: live, cache: cache}
}

// QueryCount reports whether every condition reaches its threshold, stopping
// at the first that does not.
func (s *CachedCountStore) QueryCount(ctx context.Context, deviceID string, state *hotstore.WindowState, conds []rule.AtomicCondition) (bool, error) {
	for _, c := range conds {
		ok, err := s.satisfied(ctx, deviceID, c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// QuerySequence is not cached.
func (s *CachedCountStore) QuerySequence(ctx context.Context, deviceID string, state *hotstore.WindowState, conds []rule.AtomicCondition) (bool, int, error) {
	return s.live.QuerySequence(ctx, deviceID, state, conds)
}

func (s *CachedCountStore) satisfied(ctx context.Context, deviceID string, c rule.AtomicCondition) (bool, error) {
	key := buffer.Key(deviceID, c.CacheID)

	res, err := s.cache.Get(ctx, key, c.Window, c.Threshold)
	switch {
	case err == nil && res.Level == buffer.FullyAvailable:
		cacheLookups.WithLabelValues("full").Inc()
		return true, nil

	case err == nil && res.Level == buffer.PartiallyAvailable:
		cacheLookups.WithLabelValues("partial").Inc()
		var tail int64
		if res.FollowUpStart.Before(c.Window.End) {
			remainder := c.WithWindow(rule.Window{Start: res.FollowUpStart, End: c.Window.End})
			tail, err = s.live.CountWindow(ctx, deviceID, remainder)
			if err != nil {
				return false, err
			}
		}
		total := res.Entry.Count + tail
		s.writeBack(ctx, key, total, c.Window)
		return total >= c.Threshold, nil

	case err == nil:
		cacheLookups.WithLabelValues("unavailable").Inc()
	case errors.Is(err, buffer.ErrCacheMiss):
		cacheLookups.WithLabelValues("miss").Inc()
	case errors.Is(err, buffer.ErrCorruptEntry):
		cacheLookups.WithLabelValues("corrupt").Inc()
		slog.Warn("[WindowCache] Corrupt entry, recomputing", "key", key, "error", err)
	default:
		cacheLookups.WithLabelValues("error").Inc()
		slog.Warn("[WindowCache] Lookup failed, querying live store", "key", key, "error", err)
	}

	n, err := s.live.CountWindow(ctx, deviceID, c)
	if err != nil {
		return false, err
	}
	s.writeBack(ctx, key, n, c.Window)
	return n >= c.Threshold, nil
}

// writeBack never fails the evaluation.
func (s *CachedCountStore) writeBack(ctx context.Context, key string, count int64, w rule.Window) {
	if err := s.cache.Put(ctx, key, count, w); err != nil {
		cacheWriteFailures.Inc()
		slog.Warn("[WindowCache] Write failed", "key", key, "count", count, "error", err)
	}
}
