package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/map-engine/pkg/viewport"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Storage persists what the host is allowed to cache: positioned layout
// snapshots keyed by map version and config hash, and the camera window
// per session. Map data files themselves are static resources on disk.
// Not-found is (nil, nil), never an error.
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	// WaitForConnection waits for storage to be available with retries
	WaitForConnection(ctx context.Context) error

	// SaveLayout caches a positioned snapshot for a (map version, config hash) pair
	SaveLayout(ctx context.Context, mapVersion, configHash uint64, nodes []worldmap.MapNode) error

	// LoadLayout returns the cached snapshot, or nil when none is cached
	LoadLayout(ctx context.Context, mapVersion, configHash uint64) ([]worldmap.MapNode, error)

	// SaveViewBox persists the camera window for a session
	SaveViewBox(ctx context.Context, sessionID uuid.UUID, vb viewport.ViewBox) error

	// LoadViewBox returns the persisted camera window, or nil when none exists
	LoadViewBox(ctx context.Context, sessionID uuid.UUID) (*viewport.ViewBox, error)

	// ListMaps lists the map data files available in the data directory
	ListMaps(ctx context.Context) ([]string, error)

	// LoadMap reads and parses a map data file by name
	LoadMap(ctx context.Context, name string) (*worldmap.MapData, error)
}
