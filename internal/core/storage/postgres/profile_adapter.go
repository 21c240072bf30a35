package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/aevon-rules/internal/core/storage"
)

// ProfileAdapter implements storage.ProfileStore for PostgreSQL.
type ProfileAdapter struct {
	stmtGet    *sql.Stmt
	stmtUpsert *sql.Stmt
	nowFn      func() time.Time
}

// NewProfileAdapter prepares the profile statements on db.
// db is shared with the event Adapter.
func NewProfileAdapter(db *sql.DB) (*ProfileAdapter, error) {
	if err := validateSchema(db, "device_profiles"); err != nil {
		return nil, fmt.Errorf("schema validation failed - did you run migrations?: %w", err)
	}

	stmtGet, err := db.Prepare(queryGetProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare getProfile statement: %w", err)
	}

	stmtUpsert, err := db.Prepare(queryUpsertProfile)
	if err != nil {
		stmtGet.Close()
		return nil, fmt.Errorf("failed to prepare upsertProfile statement: %w", err)
	}

	return &ProfileAdapter{
		stmtGet:    stmtGet,
		stmtUpsert: stmtUpsert,
		nowFn:      time.Now,
	}, nil
}

// GetProfile returns the device's tags, or storage.ErrNotFound.
func (a *ProfileAdapter) GetProfile(ctx context.Context, deviceID string) (map[string]string, error) {
	var raw []byte
	err := a.stmtGet.QueryRowContext(ctx, deviceID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	tags, err := unmarshalTags(raw)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = map[string]string{}
	}
	return tags, nil
}

// SaveProfile replaces the device's tags.
func (a *ProfileAdapter) SaveProfile(ctx context.Context, deviceID string, tags map[string]string) error {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return err
	}

	if _, err := a.stmtUpsert.ExecContext(ctx, deviceID, tagsJSON, a.nowFn().UTC()); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	slog.Debug("[Postgres] Saved profile", "device_id", deviceID, "tags", len(tags))
	return nil
}

// Close closes the prepared statements.
func (a *ProfileAdapter) Close() error {
	var firstErr error
	if err := a.stmtGet.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close getProfile statement: %w", err)
	}
	if err := a.stmtUpsert.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close upsertProfile statement: %w", err)
	}
	return firstErr
}
