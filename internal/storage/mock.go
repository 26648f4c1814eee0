package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/map-engine/pkg/viewport"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// MockStorage is an in-memory Storage implementation for tests.
type MockStorage struct {
	mu        sync.Mutex
	layouts   map[string][]worldmap.MapNode
	viewBoxes map[uuid.UUID]viewport.ViewBox
	maps      map[string]*worldmap.MapData
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		layouts:   make(map[string][]worldmap.MapNode),
		viewBoxes: make(map[uuid.UUID]viewport.ViewBox),
		maps:      make(map[string]*worldmap.MapData),
	}
}

// AddMap registers a map data snapshot under a name, as if it were a file
// in the data directory.
func (m *MockStorage) AddMap(name string, data *worldmap.MapData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maps[name] = data
}

func (m *MockStorage) Ping(ctx context.Context) error              { return nil }
func (m *MockStorage) Close() error                                { return nil }
func (m *MockStorage) WaitForConnection(ctx context.Context) error { return nil }

func (m *MockStorage) SaveLayout(ctx context.Context, mapVersion, configHash uint64, nodes []worldmap.MapNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]worldmap.MapNode, len(nodes))
	copy(cp, nodes)
	m.layouts[layoutKey(mapVersion, configHash)] = cp
	return nil
}

func (m *MockStorage) LoadLayout(ctx context.Context, mapVersion, configHash uint64) ([]worldmap.MapNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nodes, ok := m.layouts[layoutKey(mapVersion, configHash)]
	if !ok {
		return nil, nil
	}
	cp := make([]worldmap.MapNode, len(nodes))
	copy(cp, nodes)
	return cp, nil
}

func (m *MockStorage) SaveViewBox(ctx context.Context, sessionID uuid.UUID, vb viewport.ViewBox) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewBoxes[sessionID] = vb
	return nil
}

func (m *MockStorage) LoadViewBox(ctx context.Context, sessionID uuid.UUID) (*viewport.ViewBox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vb, ok := m.viewBoxes[sessionID]
	if !ok {
		return nil, nil
	}
	return &vb, nil
}

func (m *MockStorage) ListMaps(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.maps))
	for name := range m.maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStorage) LoadMap(ctx context.Context, name string) (*worldmap.MapData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.maps[name]
	if !ok {
		return nil, nil
	}
	return data, nil
}

// FailingStorage wraps MockStorage and fails Ping, for health tests.
type FailingStorage struct {
	*MockStorage
}

func (f *FailingStorage) Ping(ctx context.Context) error {
	return fmt.Errorf("storage unavailable")
}
