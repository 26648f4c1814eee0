package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/map-engine/pkg/viewport"
)

// ViewBox operations (Redis-backed). The camera is serialized to its
// string form only here, at the persistence boundary.

const viewBoxTTL = 30 * 24 * time.Hour

func (r *RedisStorage) SaveViewBox(ctx context.Context, sessionID uuid.UUID, vb viewport.ViewBox) error {
	key := "viewbox:" + sessionID.String()
	if err := r.client.Set(ctx, key, vb.String(), viewBoxTTL).Err(); err != nil {
		r.logger.Error("Failed to save viewbox", "uuid", sessionID, "error", err)
		return fmt.Errorf("failed to save viewbox: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadViewBox(ctx context.Context, sessionID uuid.UUID) (*viewport.ViewBox, error) {
	key := "viewbox:" + sessionID.String()
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load viewbox", "uuid", sessionID, "error", err)
		return nil, fmt.Errorf("failed to load viewbox: %w", err)
	}

	vb, err := viewport.Parse(cmd.Val())
	if err != nil {
		// A corrupt stored value degrades to "no saved camera".
		r.logger.Warn("Discarding unparseable viewbox", "uuid", sessionID, "error", err)
		return nil, nil
	}
	return &vb, nil
}
