package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// withdrawTimeout bounds the cleanup of an event that could not be submitted.
const withdrawTimeout = 5 * time.Second

// ErrInvalidEvent marks an event that failed envelope validation.
var ErrInvalidEvent = errors.New("invalid event")

// Submitter hands an archived event to rule evaluation.
// *engine.Dispatcher implements it.
type Submitter interface {
	Submit(ctx context.Context, evt *v1.Event) error
}

type Service struct {
	store            storage.EventStore
	profiles         storage.ProfileStore
	dispatcher       Submitter
	maxBodySizeBytes int
	now              func() time.Time
}

func NewService(repo storage.EventStore, profiles storage.ProfileStore, dispatcher Submitter, maxBodySizeMB int) *Service {
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if profiles == nil {
		panic("ingestion: profile store must not be nil")
	}
	if dispatcher == nil {
		panic("ingestion: dispatcher must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            repo,
		profiles:         profiles,
		dispatcher:       dispatcher,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		now:              time.Now,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/events", s.IngestHandler)
	r.GET("/v1/devices/:device_id/profile", s.GetProfileHandler)
	r.PUT("/v1/devices/:device_id/profile", s.PutProfileHandler)
}

// Ingest validates evt, archives it in the cold store and submits it for
// evaluation. It is shared by the HTTP and Kafka entry points.
//
// Archiving comes first so that a duplicate is rejected before it can reach
// hot state. If the event then cannot be submitted it is withdrawn from the
// archive, so a retry of the same id is accepted instead of being rejected as
// a duplicate of an event that was never evaluated.
func (s *Service) Ingest(ctx context.Context, evt *v1.Event) error {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	evt.IngestedAt = s.now().UTC()

	if err := evt.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	if err := s.store.SaveEvent(ctx, evt); err != nil {
		return fmt.Errorf("archiving event: %w", err)
	}

	if err := s.dispatcher.Submit(ctx, evt); err != nil {
		s.withdraw(ctx, evt)
		return fmt.Errorf("submitting event: %w", err)
	}

	slog.Debug("Event accepted",
		"event_id", evt.ID,
		"device_id", evt.DeviceID,
		"event_type", evt.Type)
	return nil
}

// withdraw deletes an archived event that was not submitted. It outlives a
// cancelled request context.
func (s *Service) withdraw(ctx context.Context, evt *v1.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), withdrawTimeout)
	defer cancel()

	if err := s.store.DeleteEvent(ctx, evt.DeviceID, evt.ID); err != nil {
		slog.Error("Failed to withdraw unsubmitted event; a retry will be rejected as duplicate",
			"event_id", evt.ID,
			"device_id", evt.DeviceID,
			"error", err)
	}
}
