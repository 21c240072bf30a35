package buffer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
)

// EntryTTL is the fixed lifetime of a cache entry, enforced by the backend.
const EntryTTL = 4 * time.Hour

const keyPrefix = "aevon:window"

// AvailabilityLevel classifies how well a cached count answers a request.
// It is derived on every lookup and never stored.
type AvailabilityLevel int

const (
	Unavailable AvailabilityLevel = iota
	PartiallyAvailable
	FullyAvailable
)

func (l AvailabilityLevel) String() string {
	switch l {
	case PartiallyAvailable:
		return "partial"
	case FullyAvailable:
		return "full"
	default:
		return "unavailable"
	}
}

// Result is the outcome of a cache lookup.
type Result struct {
	Key   string
	Entry Entry
	Level AvailabilityLevel

	// FollowUpStart is set for PartiallyAvailable: the live store must be
	// queried for [FollowUpStart, requested.End).
	FollowUpStart time.Time
}

// Backend is the key/value engine behind the cache.
type Backend interface {
	// Get returns ErrCacheMiss when the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	SetEX(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Manager reads and writes windowed counts. It holds no mutable state and is
// shared by every worker.
type Manager struct {
	backend Backend
	ttl     time.Duration
}

// NewManager creates a cache manager over backend.
func NewManager(backend Backend) *Manager {
	if backend == nil {
		panic("buffer: backend must not be nil")
	}
	return &Manager{backend: backend, ttl: EntryTTL}
}

// Key builds the cache key for one condition of one device. cacheID is
// rule.AtomicCondition.CacheID, which already carries the owning rule and
// window spec, so entries are never shared between rules.
func Key(deviceID, cacheID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, deviceID, cacheID)
}

// Get looks up key and classifies the cached window against requested.
// Returns ErrCacheMiss or ErrCorruptEntry (both recoverable) when no usable entry exists.
func (m *Manager) Get(ctx context.Context, key string, requested rule.Window, threshold int64) (Result, error) {
	if err := requested.Validate(); err != nil {
		return Result{}, err
	}
	if threshold < 0 {
		return Result{}, fmt.Errorf("threshold must be >= 0, got %d", threshold)
	}

	raw, err := m.backend.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}

	entry, err := DecodeEntry(raw)
	if err != nil {
		return Result{}, err
	}

	level, followUp := Classify(entry, requested, threshold)
	return Result{
		Key:           key,
		Entry:         entry,
		Level:         level,
		FollowUpStart: followUp,
	}, nil
}

// Put stores count for w under key with the fixed TTL, replacing any prior entry.
func (m *Manager) Put(ctx context.Context, key string, count int64, w rule.Window) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", count)
	}

	entry := Entry{Count: count, Window: w}
	if err := m.backend.SetEX(ctx, key, entry.Encode(), m.ttl); err != nil {
		return fmt.Errorf("%w: key %s: %w", ErrCacheWriteFailed, key, err)
	}
	return nil
}

// Ping checks the backend connection.
func (m *Manager) Ping(ctx context.Context) error {
	return m.backend.Ping(ctx)
}

// Classify compares a cached entry to a requested window, at millisecond
// resolution (the resolution of the stored layout):
//   - FullyAvailable when the request lies inside the cached window and the
//     cached count already meets threshold;
//   - otherwise PartiallyAvailable when both start together and the cached
//     window ends inside the request; the follow-up starts at the cached end;
//   - otherwise Unavailable.
func Classify(entry Entry, requested rule.Window, threshold int64) (AvailabilityLevel, time.Time) {
	cs, ce := entry.Window.Start.UnixMilli(), entry.Window.End.UnixMilli()
	rs, re := requested.Start.UnixMilli(), requested.End.UnixMilli()

	if rs >= cs && re <= ce && entry.Count >= threshold {
		return FullyAvailable, time.Time{}
	}
	if rs == cs && ce <= re {
		return PartiallyAvailable, entry.Window.End
	}
	return Unavailable, time.Time{}
}

// IsRecoverable reports whether err only means "no usable cached value".
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCacheMiss) || errors.Is(err, ErrCorruptEntry)
}
