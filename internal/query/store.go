package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
)

// ErrBackendUnavailable wraps any failure of a hot, cold or profile store
// call. The router never retries; the caller decides what to do with the
// evaluation.
var ErrBackendUnavailable = errors.New("store backend unavailable")

// Store answers count and sequence questions over one device's history.
// The hot variant reads state; the cold variant ignores it.
type Store interface {
	// QueryCount reports whether every condition reaches its threshold
	// inside its own window.
	QueryCount(ctx context.Context, deviceID string, state *hotstore.WindowState, conds []rule.AtomicCondition) (bool, error)

	// QuerySequence reports whether conds are matched in order, and how many
	// leading steps were matched.
	QuerySequence(ctx context.Context, deviceID string, state *hotstore.WindowState, conds []rule.AtomicCondition) (bool, int, error)
}

// ProfileMatcher checks a device's static profile.
type ProfileMatcher interface {
	MatchesProfile(ctx context.Context, deviceID string, conds []rule.ProfileCondition) (bool, error)
}

const (
	storeHot     = "hot"
	storeCold    = "cold"
	storeProfile = "profile"
)

func unavailable(store string, err error) error {
	storeErrors.WithLabelValues(store).Inc()
	return fmt.Errorf("%w: %s store: %w", ErrBackendUnavailable, store, err)
}
