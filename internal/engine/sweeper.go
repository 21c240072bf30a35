package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Sweeper periodically prunes hot state older than the retention period.
type Sweeper struct {
	dispatcher *Dispatcher
	interval   time.Duration
	retention  time.Duration
}

// NewSweeper creates a sweeper for d. retention must cover the hot side of
// every split; config validation enforces that.
func NewSweeper(d *Dispatcher, interval, retention time.Duration) *Sweeper {
	return &Sweeper{dispatcher: d, interval: interval, retention: retention}
}

// Start sweeps on every tick until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Sweeper] Starting hot state sweeper",
		"interval", s.interval,
		"retention", s.retention)

	for {
		select {
		case <-ticker.C:
			if err := s.sweepOnce(ctx); err != nil {
				if errors.Is(err, ErrStopped) || ctx.Err() != nil {
					return nil
				}
				slog.Error("[Sweeper] Sweep failed", "error", err)
			}
		case <-ctx.Done():
			slog.Info("[Sweeper] Stopping (context cancelled)")
			return nil
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) error {
	cutoff := s.dispatcher.now().Add(-s.retention)
	res, err := s.dispatcher.Sweep(ctx, cutoff)
	if err != nil {
		return err
	}

	prunedEvents.Add(float64(res.Pruned))
	trackedDevices.Set(float64(res.Devices))
	if res.Pruned > 0 {
		slog.Debug("[Sweeper] Pruned hot state",
			"cutoff", cutoff,
			"pruned_events", res.Pruned,
			"devices", res.Devices)
	}
	return nil
}
