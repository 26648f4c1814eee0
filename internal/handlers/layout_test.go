package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/map-engine/internal/storage"
	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleMap() *worldmap.MapData {
	return &worldmap.MapData{
		Nodes: []worldmap.MapNode{
			{ID: "region", Name: "Westmarch", NodeType: worldmap.NodeTypeRegion},
			{ID: "glen", Name: "Briar Glen", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
			{ID: "thorn", Name: "Thornfield", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
		},
		Edges: []worldmap.MapEdge{
			{ID: "e1", SourceNodeID: "glen", TargetNodeID: "thorn", Data: worldmap.EdgeData{Type: worldmap.EdgeTypePath}},
		},
	}
}

func postLayout(t *testing.T, h http.Handler, req LayoutRequest) (*httptest.ResponseRecorder, LayoutResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	assert.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var resp LayoutResponse
	if w.Code == http.StatusOK {
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	}
	return w, resp
}

func TestLayoutHandler_PositionsNodes(t *testing.T) {
	h := NewLayoutHandler(layout.DefaultConfig(), storage.NewMockStorage(), testLogger())

	w, resp := postLayout(t, h, LayoutRequest{Map: sampleMap()})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Nodes, 3)
	for _, n := range resp.Nodes {
		assert.Greater(t, n.VisualRadius, 0.0, "node %s has no radius", n.ID)
	}
	assert.NotNil(t, resp.LabelOffsets)
}

func TestLayoutHandler_MethodNotAllowed(t *testing.T) {
	h := NewLayoutHandler(layout.DefaultConfig(), storage.NewMockStorage(), testLogger())

	r := httptest.NewRequest(http.MethodGet, "/v1/layout", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLayoutHandler_BadBody(t *testing.T) {
	h := NewLayoutHandler(layout.DefaultConfig(), storage.NewMockStorage(), testLogger())

	r := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLayoutHandler_MissingMap(t *testing.T) {
	h := NewLayoutHandler(layout.DefaultConfig(), storage.NewMockStorage(), testLogger())
	w, _ := postLayout(t, h, LayoutRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLayoutHandler_SanitizesBadRecords(t *testing.T) {
	h := NewLayoutHandler(layout.DefaultConfig(), storage.NewMockStorage(), testLogger())

	m := sampleMap()
	m.Nodes = append(m.Nodes, worldmap.MapNode{ID: "orphan", Name: "Lost", NodeType: worldmap.NodeTypeRoom, ParentNodeID: "missing"})
	m.Edges = append(m.Edges, worldmap.MapEdge{ID: "bad", SourceNodeID: "glen", TargetNodeID: "missing", Data: worldmap.EdgeData{Type: worldmap.EdgeTypePath}})

	w, resp := postLayout(t, h, LayoutRequest{Map: m})

	// Bad records degrade, they never fail the request.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Nodes, 4)
}

func TestLayoutHandler_ClampsConfig(t *testing.T) {
	h := NewLayoutHandler(layout.DefaultConfig(), storage.NewMockStorage(), testLogger())

	bad := layout.Config{IdealEdgeLength: -100, NestedAnglePadding: 50}
	w, resp := postLayout(t, h, LayoutRequest{Map: sampleMap(), Config: &bad})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, resp.Config.IdealEdgeLength, 10.0)
	assert.LessOrEqual(t, resp.Config.NestedAnglePadding, 1.0)
}

func TestLayoutHandler_ServesCachedSnapshot(t *testing.T) {
	store := storage.NewMockStorage()
	h := NewLayoutHandler(layout.DefaultConfig(), store, testLogger())

	w1, first := postLayout(t, h, LayoutRequest{Map: sampleMap()})
	assert.Equal(t, http.StatusOK, w1.Code)

	w2, second := postLayout(t, h, LayoutRequest{Map: sampleMap()})
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, first.Nodes, second.Nodes)
}
