package worldmap

// EdgeType distinguishes travel connections from rendered containment.
type EdgeType string

const (
	EdgeTypePath        EdgeType = "path"
	EdgeTypeShortcut    EdgeType = "shortcut"
	EdgeTypeContainment EdgeType = "containment"
)

// Traversable reports whether the edge type can be walked by the
// pathfinder. Containment edges are a rendering convenience; the
// authoritative hierarchy is MapNode.ParentNodeID.
func (t EdgeType) Traversable() bool {
	return t == EdgeTypePath || t == EdgeTypeShortcut
}

// EdgeData carries the travel properties of an edge.
type EdgeData struct {
	Type        EdgeType `json:"type"`
	Status      string   `json:"status,omitempty"`
	Description string   `json:"description,omitempty"`
	TravelTime  float64  `json:"travel_time,omitempty"` // comparable cost; 0 means unknown
}

// MapEdge connects two nodes.
type MapEdge struct {
	ID           string   `json:"id"`
	SourceNodeID string   `json:"source_node_id"`
	TargetNodeID string   `json:"target_node_id"`
	Data         EdgeData `json:"data"`
}

// Weight is the pathfinding cost of the edge: travel time when present,
// otherwise 1.
func (e MapEdge) Weight() float64 {
	if e.Data.TravelTime > 0 {
		return e.Data.TravelTime
	}
	return 1
}
