package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/jwebster45206/map-engine/pkg/viewport"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

func setupTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store := NewRedisStorage(mr.Addr(), t.TempDir(), logger)
	return store, mr
}

func TestRedisStorage_LayoutRoundTrip(t *testing.T) {
	store, mr := setupTestStorage(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	nodes := []worldmap.MapNode{
		{ID: "region", Name: "Westmarch", NodeType: worldmap.NodeTypeRegion,
			Position: worldmap.Position{X: 0, Y: 0}, VisualRadius: 240},
		{ID: "town", Name: "Briar Glen", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region",
			Position: worldmap.Position{X: 40, Y: -12}, VisualRadius: 112},
	}

	if err := store.SaveLayout(ctx, 0xabc, 0xdef, nodes); err != nil {
		t.Fatalf("Failed to save layout: %v", err)
	}

	loaded, err := store.LoadLayout(ctx, 0xabc, 0xdef)
	if err != nil {
		t.Fatalf("Failed to load layout: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(loaded))
	}
	if loaded[1].Position != nodes[1].Position || loaded[1].VisualRadius != nodes[1].VisualRadius {
		t.Errorf("Round trip changed node: %+v vs %+v", loaded[1], nodes[1])
	}
}

func TestRedisStorage_LayoutCacheMiss(t *testing.T) {
	store, mr := setupTestStorage(t)
	defer mr.Close()
	defer store.Close()

	loaded, err := store.LoadLayout(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Cache miss must not be an error: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil on cache miss, got %v", loaded)
	}
}

func TestRedisStorage_ViewBoxRoundTrip(t *testing.T) {
	store, mr := setupTestStorage(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	sessionID := uuid.New()
	vb := viewport.ViewBox{MinX: -320, MinY: 110.5, Width: 640, Height: 512}

	if err := store.SaveViewBox(ctx, sessionID, vb); err != nil {
		t.Fatalf("Failed to save viewbox: %v", err)
	}

	loaded, err := store.LoadViewBox(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to load viewbox: %v", err)
	}
	if loaded == nil || *loaded != vb {
		t.Errorf("Expected %+v, got %+v", vb, loaded)
	}
}

func TestRedisStorage_ViewBoxNotFound(t *testing.T) {
	store, mr := setupTestStorage(t)
	defer mr.Close()
	defer store.Close()

	loaded, err := store.LoadViewBox(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Not found must not be an error: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil, got %+v", loaded)
	}
}

func TestRedisStorage_CorruptViewBoxDegrades(t *testing.T) {
	store, mr := setupTestStorage(t)
	defer mr.Close()
	defer store.Close()

	sessionID := uuid.New()
	mr.Set("viewbox:"+sessionID.String(), "not a viewbox")

	loaded, err := store.LoadViewBox(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Corrupt value must degrade, not fail: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil for corrupt value, got %+v", loaded)
	}
}

func TestRedisStorage_Maps(t *testing.T) {
	store, mr := setupTestStorage(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	mapJSON := `{"nodes":[{"id":"region","name":"Westmarch","node_type":"region"}],"edges":[]}`
	if err := os.WriteFile(filepath.Join(store.dataDir, "westmarch.json"), []byte(mapJSON), 0o644); err != nil {
		t.Fatalf("Failed to write map file: %v", err)
	}

	names, err := store.ListMaps(ctx)
	if err != nil {
		t.Fatalf("Failed to list maps: %v", err)
	}
	if len(names) != 1 || names[0] != "westmarch" {
		t.Errorf("Expected [westmarch], got %v", names)
	}

	m, err := store.LoadMap(ctx, "westmarch")
	if err != nil {
		t.Fatalf("Failed to load map: %v", err)
	}
	if m == nil || len(m.Nodes) != 1 || m.Nodes[0].ID != "region" {
		t.Errorf("Unexpected map data: %+v", m)
	}

	missing, err := store.LoadMap(ctx, "atlantis")
	if err != nil || missing != nil {
		t.Errorf("Expected (nil, nil) for a missing map, got (%v, %v)", missing, err)
	}

	if _, err := store.LoadMap(ctx, "../escape"); err == nil {
		t.Error("Expected path traversal to be rejected")
	}
}
