package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scriptedReader hands out msgs in order, then blocks until ctx ends.
type scriptedReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	closed    bool
	drained   chan struct{}
}

func newScriptedReader(msgs ...kafka.Message) *scriptedReader {
	return &scriptedReader{msgs: msgs, drained: make(chan struct{})}
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	if len(r.msgs) == 0 {
		select {
		case <-r.drained:
		default:
			close(r.drained)
		}
	}
	return nil
}

func (r *scriptedReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func message(t *testing.T, offset int64, evt *v1.Event) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Key: []byte(evt.DeviceID), Value: raw}
}

func runConsumer(t *testing.T, c *Consumer, r *scriptedReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-r.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not commit every message")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
	require.True(t, r.closed)
}

func TestConsumer_CommitsIngestedMalformedAndDuplicate(t *testing.T) {
	f := newFixture(t)

	dup := validEvent()
	dup.ID = "evt-dup"
	invalid := validEvent()
	invalid.ID = "evt-invalid"
	invalid.DeviceID = ""

	reader := newScriptedReader(
		message(t, 1, validEvent()),
		kafka.Message{Offset: 2, Value: []byte("{not json")},
		message(t, 3, dup),
		message(t, 4, invalid),
	)

	f.store.EXPECT().
		SaveEvent(mock.Anything, mock.MatchedBy(func(e *v1.Event) bool { return e.ID == "evt-001" })).
		Return(nil).
		Once()
	f.store.EXPECT().
		SaveEvent(mock.Anything, mock.MatchedBy(func(e *v1.Event) bool { return e.ID == "evt-dup" })).
		Return(storage.ErrDuplicate).
		Once()
	f.dispatcher.EXPECT().
		Submit(mock.Anything, mock.MatchedBy(func(e *v1.Event) bool { return e.ID == "evt-001" })).
		Return(nil).
		Once()

	runConsumer(t, NewConsumer(reader, f.svc), reader)
	require.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}

func TestConsumer_RetriesTransientFailures(t *testing.T) {
	f := newFixture(t)
	reader := newScriptedReader(message(t, 7, validEvent()))

	f.store.EXPECT().SaveEvent(mock.Anything, mock.Anything).Return(errors.New("connection reset")).Twice()
	f.store.EXPECT().SaveEvent(mock.Anything, mock.Anything).Return(nil).Once()
	f.dispatcher.EXPECT().Submit(mock.Anything, mock.Anything).Return(nil).Once()

	c := NewConsumer(reader, f.svc)
	c.backoff = time.Millisecond

	runConsumer(t, c, reader)
	require.Equal(t, []int64{7}, reader.committed)
}

func TestConsumer_RetryAfterFailedSubmitIsEvaluated(t *testing.T) {
	f := newFixture(t)
	reader := newScriptedReader(message(t, 9, validEvent()))

	f.store.EXPECT().SaveEvent(mock.Anything, mock.Anything).Return(nil).Twice()
	f.dispatcher.EXPECT().Submit(mock.Anything, mock.Anything).Return(errors.New("worker queue closed")).Once()
	f.store.EXPECT().DeleteEvent(mock.Anything, "dev-1", "evt-001").Return(nil).Once()
	f.dispatcher.EXPECT().Submit(mock.Anything, mock.Anything).Return(nil).Once()

	c := NewConsumer(reader, f.svc)
	c.backoff = time.Millisecond

	runConsumer(t, c, reader)
	require.Equal(t, []int64{9}, reader.committed)
}

func TestConsumer_StopsWhileRetrying(t *testing.T) {
	f := newFixture(t)
	reader := newScriptedReader(message(t, 1, validEvent()))

	attempted := make(chan struct{}, 1)
	f.store.EXPECT().SaveEvent(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *v1.Event) error {
			select {
			case attempted <- struct{}{}:
			default:
			}
			return errors.New("connection reset")
		})

	c := NewConsumer(reader, f.svc)
	c.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	<-attempted
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
	require.Empty(t, reader.committed)
}
