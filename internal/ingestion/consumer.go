package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer feeds events from a Kafka topic into Service.Ingest.
//
// A message is committed once it was ingested, rejected as malformed, or
// rejected as a duplicate. Any other failure is retried with backoff until it
// succeeds or the consumer is stopped, so delivery is at least once.
type Consumer struct {
	reader  messageReader
	svc     *Service
	backoff time.Duration
}

// NewKafkaReader returns a consumer-group reader for topic.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
}

// NewConsumer wraps r. The consumer owns r and closes it when Run returns.
func NewConsumer(r messageReader, svc *Service) *Consumer {
	if r == nil {
		panic("ingestion: reader must not be nil")
	}
	if svc == nil {
		panic("ingestion: service must not be nil")
	}
	return &Consumer{reader: r, svc: svc, backoff: time.Second}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Warn("[Consumer] Failed to close reader", "error", err)
		}
	}()

	slog.Info("[Consumer] Starting event consumer")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("[Consumer] Stopping (context cancelled)")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				slog.Info("[Consumer] Stopping (context cancelled)")
				return nil
			}
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("committing offset %d: %w", msg.Offset, err)
		}
	}
}

// handle returns an error only when ctx ends before the message is settled.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	var evt v1.Event
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		slog.Warn("[Consumer] Skipping malformed message",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		return nil
	}

	for attempt := 1; ; attempt++ {
		err := c.svc.Ingest(ctx, &evt)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrInvalidEvent):
			slog.Warn("[Consumer] Skipping invalid event",
				"offset", msg.Offset,
				"event_id", evt.ID,
				"error", err)
			return nil
		case errors.Is(err, storage.ErrDuplicate):
			slog.Info("[Consumer] Skipping duplicate event",
				"offset", msg.Offset,
				"event_id", evt.ID,
				"device_id", evt.DeviceID)
			return nil
		}

		slog.Error("[Consumer] Ingest failed, retrying",
			"offset", msg.Offset,
			"event_id", evt.ID,
			"attempt", attempt,
			"error", err)

		select {
		case <-time.After(c.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
