package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Layout snapshot operations (Redis-backed)

func layoutKey(mapVersion, configHash uint64) string {
	return fmt.Sprintf("layout:%x:%x", mapVersion, configHash)
}

func (r *RedisStorage) SaveLayout(ctx context.Context, mapVersion, configHash uint64, nodes []worldmap.MapNode) error {
	data, err := json.Marshal(nodes)
	if err != nil {
		r.logger.Error("Failed to marshal layout snapshot", "map_version", mapVersion, "error", err)
		return fmt.Errorf("failed to marshal layout snapshot: %w", err)
	}

	key := layoutKey(mapVersion, configHash)
	if err := r.client.Set(ctx, key, string(data), layoutTTL).Err(); err != nil {
		r.logger.Error("Failed to save layout snapshot", "key", key, "error", err)
		return fmt.Errorf("failed to save layout snapshot: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadLayout(ctx context.Context, mapVersion, configHash uint64) ([]worldmap.MapNode, error) {
	key := layoutKey(mapVersion, configHash)
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss, not an error
		}
		r.logger.Error("Failed to load layout snapshot", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load layout snapshot: %w", err)
	}

	var nodes []worldmap.MapNode
	if err := json.Unmarshal([]byte(cmd.Val()), &nodes); err != nil {
		r.logger.Error("Failed to unmarshal layout snapshot", "key", key, "error", err)
		return nil, fmt.Errorf("failed to unmarshal layout snapshot: %w", err)
	}
	return nodes, nil
}
