package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Sink receives rule matches.
type Sink interface {
	Publish(ctx context.Context, m Match) error
	Name() string
}

// LogSink writes every match to the default logger.
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Publish(_ context.Context, m Match) error {
	slog.Info("[Match] Rule matched",
		"rule", m.RuleName,
		"device_id", m.DeviceID,
		"event_id", m.EventID,
		"event_type", m.EventType,
		"evaluated_at", m.EvaluatedAt)
	return nil
}

// ErrSinkFull is returned by KafkaSink.Publish when its queue is full.
var ErrSinkFull = errors.New("sink queue full")

// drainTimeout bounds the flush of queued matches on shutdown.
const drainTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes matches as JSON, keyed by device id so one device's
// matches stay on one partition. Publish only enqueues; Run writes. A slow or
// unreachable broker fills the queue and further matches are rejected with
// ErrSinkFull instead of stalling the caller.
type KafkaSink struct {
	writer messageWriter
	queue  chan Match
}

// NewKafkaWriter returns a synchronous writer for topic. KafkaSink.Run is its
// only caller, so a blocked write never reaches a worker.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        false,
	}
}

// NewKafkaSink wraps w with a queue of queueSize matches. The sink owns w and
// closes it on Close.
func NewKafkaSink(w messageWriter, queueSize int) *KafkaSink {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &KafkaSink{writer: w, queue: make(chan Match, queueSize)}
}

func (s *KafkaSink) Name() string { return "kafka" }

// Publish enqueues m without blocking.
func (s *KafkaSink) Publish(_ context.Context, m Match) error {
	select {
	case s.queue <- m:
		return nil
	default:
		return ErrSinkFull
	}
}

// Run writes queued matches until ctx is cancelled, then flushes what is left
// for at most drainTimeout. Write failures are logged and counted; they never
// stop the loop.
func (s *KafkaSink) Run(ctx context.Context) error {
	slog.Info("[KafkaSink] Starting publisher", "queue_size", cap(s.queue))
	for {
		select {
		case m := <-s.queue:
			s.write(ctx, m)
		case <-ctx.Done():
			s.drain()
			return nil
		}
	}
}

func (s *KafkaSink) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case m := <-s.queue:
			s.write(ctx, m)
		default:
			return
		}
		if ctx.Err() != nil {
			slog.Warn("[KafkaSink] Drain timed out", "dropped", len(s.queue))
			return
		}
	}
}

func (s *KafkaSink) write(ctx context.Context, m Match) {
	if err := s.send(ctx, m); err != nil {
		sinkFailures.WithLabelValues(s.Name()).Inc()
		slog.Error("[KafkaSink] Failed to publish match",
			"rule", m.RuleName,
			"device_id", m.DeviceID,
			"error", err)
	}
}

func (s *KafkaSink) send(ctx context.Context, m Match) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding match: %w", err)
	}
	if err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.DeviceID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("writing match: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// MultiSink publishes to every sink and reports the first failure. Failures
// are counted under the failing child's name.
type MultiSink []Sink

func (ms MultiSink) Name() string { return "multi" }

func (ms MultiSink) Publish(ctx context.Context, m Match) error {
	var firstErr error
	for _, s := range ms {
		if err := publish(ctx, s, m); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s sink: %w", s.Name(), err)
		}
	}
	return firstErr
}

// publish sends m to s and counts a failure under the name of the sink that
// actually failed.
func publish(ctx context.Context, s Sink, m Match) error {
	if ms, ok := s.(MultiSink); ok {
		return ms.Publish(ctx, m)
	}
	err := s.Publish(ctx, m)
	if err != nil {
		sinkFailures.WithLabelValues(s.Name()).Inc()
	}
	return err
}
