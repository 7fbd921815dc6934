package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/notifyschema/internal/domain"
)

const channelSchema = `
CREATE TABLE IF NOT EXISTS notification_channels (
	channel_id        TEXT PRIMARY KEY,
	importance        INTEGER NOT NULL,
	visibility        INTEGER NOT NULL,
	enable_lights     BOOLEAN NOT NULL,
	enable_vibration  BOOLEAN NOT NULL,
	vibration_pattern JSONB NOT NULL DEFAULT '[]',
	definition        JSONB NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// ChannelRepository stores channel records in Postgres.
type ChannelRepository struct {
	db *sqlx.DB
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(db *sqlx.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// EnsureSchema creates the channel table if it does not exist.
func (r *ChannelRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, channelSchema); err != nil {
		return fmt.Errorf("create notification_channels: %w", err)
	}
	return nil
}

type channelRow struct {
	domain.ChannelRecord
	VibrationPattern []byte `db:"vibration_pattern"`
	Definition       []byte `db:"definition"`
}

// Get retrieves the record of a channel id.
func (r *ChannelRepository) Get(ctx context.Context, channelID string) (*domain.ChannelRecord, error) {
	var row channelRow
	err := r.db.GetContext(ctx, &row,
		`SELECT channel_id, importance, visibility, enable_lights, enable_vibration,
		        vibration_pattern, definition, created_at, updated_at
		 FROM notification_channels WHERE channel_id = $1`, channelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find channel %s: %w", channelID, err)
	}

	rec := row.ChannelRecord
	if err := json.Unmarshal(row.VibrationPattern, &rec.VibrationPattern); err != nil {
		return nil, fmt.Errorf("decode vibration pattern of %s: %w", channelID, err)
	}
	if err := json.Unmarshal(row.Definition, &rec.Definition); err != nil {
		return nil, fmt.Errorf("decode definition of %s: %w", channelID, err)
	}
	return &rec, nil
}

// Put creates a channel record or refreshes the definition of an existing one.
// The immutable columns are never updated.
func (r *ChannelRepository) Put(ctx context.Context, rec domain.ChannelRecord) error {
	pattern := rec.VibrationPattern
	if pattern == nil {
		pattern = []int64{}
	}
	patternJSON, err := json.Marshal(pattern)
	if err != nil {
		return fmt.Errorf("encode vibration pattern: %w", err)
	}
	definitionJSON, err := json.Marshal(rec.Definition)
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notification_channels
		     (channel_id, importance, visibility, enable_lights, enable_vibration,
		      vibration_pattern, definition, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (channel_id)
		 DO UPDATE SET definition = EXCLUDED.definition,
		               updated_at = EXCLUDED.updated_at`,
		rec.ChannelID, int(rec.Importance), int(rec.Visibility), rec.EnableLights, rec.EnableVibration,
		string(patternJSON), string(definitionJSON), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert channel %s: %w", rec.ChannelID, err)
	}
	return nil
}
