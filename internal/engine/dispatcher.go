package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/partition"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
	"golang.org/x/sync/errgroup"
)

// ErrStopped is returned by Submit and Sweep once the dispatcher has shut down.
var ErrStopped = errors.New("dispatcher stopped")

// Dispatcher fans events out to a fixed set of workers. A device always lands
// on the same worker, which owns that device's hot state, so evaluations for
// one device are serialized and state needs no locking.
type Dispatcher struct {
	workers   []*worker
	evaluator *Evaluator
	sink      Sink
	now       func() time.Time
	stopped   chan struct{}

	history   HistoryLoader
	retention time.Duration
}

// HistoryLoader reads archived events back. storage.EventStore implements it.
type HistoryLoader interface {
	ListEvents(ctx context.Context, deviceID string, eventTypes []string, start, end time.Time) ([]*v1.Event, error)
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithClock replaces time.Now as the evaluation time source.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// WithHistory seeds a device's hot state from loader the first time a worker
// sees the device, covering [now-retention, now). Without it, hot state starts
// empty after a restart and near windows miss archived events.
func WithHistory(loader HistoryLoader, retention time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.history = loader
		d.retention = retention
	}
}

// NewDispatcher creates workers with a queue of queueSize each. Workers start
// with Run.
func NewDispatcher(evaluator *Evaluator, sink Sink, workers, queueSize int, opts ...DispatcherOption) *Dispatcher {
	if evaluator == nil {
		panic("engine: evaluator must not be nil")
	}
	if sink == nil {
		panic("engine: sink must not be nil")
	}
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	d := &Dispatcher{
		workers:   make([]*worker, workers),
		evaluator: evaluator,
		sink:      sink,
		now:       time.Now,
		stopped:   make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = &worker{
			id:     i,
			tasks:  make(chan task, queueSize),
			states: make(map[string]*hotstore.WindowState),
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run starts the workers and blocks until ctx is cancelled. Queued events
// that were not picked up before cancellation are dropped; they remain in the
// cold store.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("[Dispatcher] Starting workers", "workers", len(d.workers))

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range d.workers {
		w := w
		g.Go(func() error {
			w.run(gctx, d)
			return nil
		})
	}
	err := g.Wait()
	close(d.stopped)

	dropped := 0
	for _, w := range d.workers {
		dropped += len(w.tasks)
	}
	slog.Info("[Dispatcher] Stopped", "dropped_tasks", dropped)
	return err
}

// Submit routes evt to the worker owning its device. It blocks while that
// worker's queue is full.
func (d *Dispatcher) Submit(ctx context.Context, evt *v1.Event) error {
	w := d.workers[partition.Shard(evt.DeviceID, len(d.workers))]
	select {
	case <-d.stopped:
		return ErrStopped
	default:
	}
	select {
	case w.tasks <- task{evt: evt}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}
}

// SweepResult summarizes one sweep across all workers.
type SweepResult struct {
	Pruned  int // events dropped
	Devices int // devices still holding hot state
}

// Sweep asks every worker to drop events older than cutoff and forget devices
// left without events. It waits until all workers have answered.
func (d *Dispatcher) Sweep(ctx context.Context, cutoff time.Time) (SweepResult, error) {
	replies := make(chan SweepResult, len(d.workers))
	for _, w := range d.workers {
		select {
		case w.tasks <- task{cutoff: cutoff, swept: replies}:
		case <-ctx.Done():
			return SweepResult{}, ctx.Err()
		case <-d.stopped:
			return SweepResult{}, ErrStopped
		}
	}

	var total SweepResult
	for range d.workers {
		select {
		case r := <-replies:
			total.Pruned += r.Pruned
			total.Devices += r.Devices
		case <-ctx.Done():
			return total, ctx.Err()
		case <-d.stopped:
			return total, ErrStopped
		}
	}
	return total, nil
}

// task is either an event to evaluate or a sweep request.
type task struct {
	evt    *v1.Event
	cutoff time.Time
	swept  chan<- SweepResult
}

type worker struct {
	id     int
	tasks  chan task
	states map[string]*hotstore.WindowState
}

func (w *worker) run(ctx context.Context, d *Dispatcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-w.tasks:
			if t.swept != nil {
				t.swept <- w.sweep(t.cutoff)
				continue
			}
			w.process(ctx, d, t.evt)
		}
	}
}

func (w *worker) process(ctx context.Context, d *Dispatcher, evt *v1.Event) {
	now := d.now()
	state, ok := w.states[evt.DeviceID]
	if !ok {
		state = hotstore.NewWindowState(evt.DeviceID)
		w.seed(ctx, d, state, now)
		w.states[evt.DeviceID] = state
	}
	state.Append(evt)
	eventsProcessed.Inc()

	if !d.evaluator.Triggers(evt.Type) {
		return
	}

	matches, err := d.evaluator.Evaluate(ctx, evt, state, now)
	if err != nil {
		slog.Error("[Dispatcher] Evaluation failed",
			"worker", w.id,
			"device_id", evt.DeviceID,
			"event_id", evt.ID,
			"event_type", evt.Type,
			"error", err)
	}
	for _, m := range matches {
		if err := publish(ctx, d.sink, m); err != nil {
			slog.Error("[Dispatcher] Failed to publish match",
				"sink", d.sink.Name(),
				"rule", m.RuleName,
				"device_id", m.DeviceID,
				"error", err)
		}
	}
}

// seed loads the device's recent archived events into a fresh state. A load
// failure leaves the state empty; near windows then undercount until the
// device's history is rebuilt by new events.
func (w *worker) seed(ctx context.Context, d *Dispatcher, state *hotstore.WindowState, now time.Time) {
	types := d.evaluator.EventTypes()
	if d.history == nil || len(types) == 0 {
		return
	}

	events, err := d.history.ListEvents(ctx, state.DeviceID(), types, now.Add(-d.retention), now)
	if err != nil {
		seedFailures.Inc()
		slog.Warn("[Dispatcher] Failed to seed hot state from archive",
			"worker", w.id,
			"device_id", state.DeviceID(),
			"error", err)
		return
	}
	for _, evt := range events {
		state.Append(evt)
	}
	seededEvents.Add(float64(len(events)))
}

func (w *worker) sweep(cutoff time.Time) SweepResult {
	var res SweepResult
	for id, state := range w.states {
		res.Pruned += state.Prune(cutoff)
		if state.Len() == 0 {
			delete(w.states, id)
		}
	}
	res.Devices = len(w.states)
	return res
}
