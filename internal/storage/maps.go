package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Map data file operations (filesystem-backed). Maps are static resources
// authored as JSON files in the data directory.

func (r *RedisStorage) ListMaps(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data dir %s: %w", r.dataDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (r *RedisStorage) LoadMap(ctx context.Context, name string) (*worldmap.MapData, error) {
	// Reject path traversal in map names
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid map name: %s", name)
	}

	path := filepath.Join(r.dataDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Return nil for not found
		}
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	var m worldmap.MapData
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal map file %s: %w", path, err)
	}
	return &m, nil
}
