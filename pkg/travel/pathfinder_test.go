package travel

import (
	"testing"

	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// travelMap sketches a small world: a region holding two locations, with
// rooms under one of them, plus travel edges between the locations and a
// detached island.
func travelMap() *worldmap.MapData {
	return &worldmap.MapData{
		Nodes: []worldmap.MapNode{
			{ID: "region", Name: "Westmarch", NodeType: worldmap.NodeTypeRegion},
			{ID: "glen", Name: "Briar Glen", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
			{ID: "thorn", Name: "Thornfield", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
			{ID: "mill", Name: "Old Mill", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
			{ID: "room_a", Name: "Room A", NodeType: worldmap.NodeTypeRoom, ParentNodeID: "glen"},
			{ID: "isle", Name: "Lost Isle", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
		},
		Edges: []worldmap.MapEdge{
			{ID: "glen-thorn", SourceNodeID: "glen", TargetNodeID: "thorn", Data: worldmap.EdgeData{Type: worldmap.EdgeTypePath}},
			{ID: "thorn-mill", SourceNodeID: "thorn", TargetNodeID: "mill", Data: worldmap.EdgeData{Type: worldmap.EdgeTypePath}},
			{ID: "glen-mill", SourceNodeID: "glen", TargetNodeID: "mill", Data: worldmap.EdgeData{Type: worldmap.EdgeTypeShortcut, TravelTime: 5}},
			// Containment edges are rendering only and must never be walked.
			{ID: "region-isle", SourceNodeID: "region", TargetNodeID: "isle", Data: worldmap.EdgeData{Type: worldmap.EdgeTypeContainment}},
		},
	}
}

func TestFindPath_NoTravelNeeded(t *testing.T) {
	m := travelMap()

	tests := []struct {
		name    string
		current string
		dest    string
	}{
		{"same node", "room_a", "room_a"},
		{"destination is ancestor", "room_a", "glen"},
		{"destination is root ancestor", "room_a", "region"},
		{"destination is descendant", "glen", "room_a"},
		{"unknown current", "nope", "glen"},
		{"unknown destination", "glen", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if steps := FindPath(m, tt.current, tt.dest); steps != nil {
				t.Errorf("Expected nil, got %v", steps)
			}
		})
	}
}

func TestFindPath_DirectEdge(t *testing.T) {
	m := travelMap()
	steps := FindPath(m, "glen", "thorn")
	if len(steps) != 1 {
		t.Fatalf("Expected a single step, got %v", steps)
	}
	if steps[0].NodeID != "thorn" || steps[0].EdgeID != "glen-thorn" {
		t.Errorf("Unexpected step %+v", steps[0])
	}
}

func TestFindPath_PrefersLowerTravelTime(t *testing.T) {
	m := travelMap()
	// glen-mill shortcut costs 5; glen->thorn->mill costs 1+1.
	steps := FindPath(m, "glen", "mill")
	if len(steps) != 2 {
		t.Fatalf("Expected the two-hop route, got %v", steps)
	}
	if steps[0].NodeID != "thorn" || steps[1].NodeID != "mill" {
		t.Errorf("Unexpected route %v", steps)
	}
}

func TestFindPath_ShortcutWinsWhenCheaper(t *testing.T) {
	m := travelMap()
	for i := range m.Edges {
		if m.Edges[i].ID == "glen-mill" {
			m.Edges[i].Data.TravelTime = 1
		}
	}
	steps := FindPath(m, "glen", "mill")
	if len(steps) != 1 || steps[0].EdgeID != "glen-mill" {
		t.Errorf("Expected the cheap shortcut, got %v", steps)
	}
}

func TestFindPath_ContainmentNotTraversed(t *testing.T) {
	m := travelMap()
	// The island's only connection is a containment edge.
	if steps := FindPath(m, "glen", "isle"); steps != nil {
		t.Errorf("Expected no route over containment edges, got %v", steps)
	}
}

func TestFindPath_NeverRepeatsNodes(t *testing.T) {
	m := travelMap()
	steps := FindPath(m, "mill", "glen")
	seen := map[string]bool{"mill": true}
	for _, s := range steps {
		if seen[s.NodeID] {
			t.Fatalf("Route revisits %s: %v", s.NodeID, steps)
		}
		seen[s.NodeID] = true
	}
}

func TestFindPath_Undirected(t *testing.T) {
	m := travelMap()
	there := FindPath(m, "glen", "thorn")
	back := FindPath(m, "thorn", "glen")
	if len(there) != 1 || len(back) != 1 {
		t.Errorf("Travel edges must work both ways: %v / %v", there, back)
	}
}

func TestFindPath_SkipsEdgesWithMissingEndpoints(t *testing.T) {
	m := travelMap()
	m.Edges = append(m.Edges, worldmap.MapEdge{
		ID: "broken", SourceNodeID: "glen", TargetNodeID: "gone",
		Data: worldmap.EdgeData{Type: worldmap.EdgeTypePath},
	})
	// One bad record never blocks routing the rest.
	if steps := FindPath(m, "glen", "thorn"); len(steps) != 1 {
		t.Errorf("Expected routing to survive a dangling edge, got %v", steps)
	}
}

func TestCache_ReusesAndInvalidates(t *testing.T) {
	m := travelMap()
	c := NewCache()

	first := c.FindPath(m, "glen", "mill")
	if len(first) != 2 {
		t.Fatalf("Expected two-hop route, got %v", first)
	}

	// Same structural version: answered from cache.
	cached := c.FindPath(m, "glen", "mill")
	if len(cached) != 2 {
		t.Fatalf("Expected cached route, got %v", cached)
	}

	// Structural change invalidates: drop the middle leg.
	var pruned []worldmap.MapEdge
	for _, e := range m.Edges {
		if e.ID != "thorn-mill" {
			pruned = append(pruned, e)
		}
	}
	m2 := &worldmap.MapData{Nodes: m.Nodes, Edges: pruned}
	rerouted := c.FindPath(m2, "glen", "mill")
	if len(rerouted) != 1 || rerouted[0].EdgeID != "glen-mill" {
		t.Errorf("Expected reroute over the shortcut after invalidation, got %v", rerouted)
	}
}
