package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	httperr "github.com/aevon-lab/aevon-rules/internal/core/errors"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
	"github.com/aevon-lab/aevon-rules/internal/engine"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgInvalidJSON      = "Invalid JSON body"
	msgPersistFailed    = "Failed to persist event"
	msgDuplicateEvent   = "Event already exists"
	msgNotAccepting     = "Rule evaluation is shutting down"
	msgProfileNotFound  = "Profile not found"
	msgProfileFailed    = "Failed to access profile store"
	msgTagsRequired     = "tags is required"
	msgDeviceIDRequired = "device_id is required"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles HTTP POST requests for event ingestion.
func (s *Service) IngestHandler(c *gin.Context) {
	evt, payloadSize, err := s.parseEvent(c)
	if err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Received Event",
		"event_id", evt.ID,
		"device_id", evt.DeviceID,
		"event_type", evt.Type,
		"payload_size", payloadSize)

	if err := s.Ingest(c.Request.Context(), evt); err != nil {
		writeError(c, classifyIngestError(evt, err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "id": evt.ID})
}

// parseEvent reads the raw request body and binds it into an Event struct.
// Returns the parsed event and the raw payload size (used for structured logging upstream).
func (s *Service) parseEvent(c *gin.Context) (*v1.Event, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var evt v1.Event
	if err := c.ShouldBindJSON(&evt); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return &evt, len(bodyBytes), nil
}

// classifyIngestError maps an Ingest failure onto the HTTP error shape.
func classifyIngestError(evt *v1.Event, err error) *ingestionError {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		slog.Warn("Envelope validation failed", "error", err, "event_id", evt.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidEventError,
			message:    err.Error(),
		}
	case errors.Is(err, storage.ErrDuplicate):
		slog.Info("Duplicate event rejected", "event_id", evt.ID, "device_id", evt.DeviceID)
		return &ingestionError{
			statusCode: http.StatusConflict,
			errorType:  httperr.HttpDuplicateEventError,
			message:    msgDuplicateEvent,
		}
	case errors.Is(err, engine.ErrStopped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Event archived but not evaluated", "event_id", evt.ID, "error", err)
		return &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpUnavailableError,
			message:    msgNotAccepting,
		}
	default:
		slog.Error("Failed to persist event", "error", err, "event_id", evt.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}
}

type profileBody struct {
	Tags map[string]string `json:"tags"`
}

// GetProfileHandler returns the stored profile tags of a device.
func (s *Service) GetProfileHandler(c *gin.Context) {
	deviceID := c.Param("device_id")

	tags, err := s.profiles.GetProfile(c.Request.Context(), deviceID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(c, &ingestionError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpNotFoundError,
			message:    msgProfileNotFound,
		})
		return
	}
	if err != nil {
		slog.Error("Failed to load profile", "error", err, "device_id", deviceID)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgProfileFailed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_id": deviceID, "tags": tags})
}

// PutProfileHandler replaces the profile tags of a device.
func (s *Service) PutProfileHandler(c *gin.Context) {
	deviceID := c.Param("device_id")
	if deviceID == "" {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgDeviceIDRequired,
		})
		return
	}

	var body profileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		})
		return
	}
	if body.Tags == nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgTagsRequired,
		})
		return
	}

	if err := s.profiles.SaveProfile(c.Request.Context(), deviceID, body.Tags); err != nil {
		slog.Error("Failed to save profile", "error", err, "device_id", deviceID)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgProfileFailed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_id": deviceID, "tags": body.Tags})
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
