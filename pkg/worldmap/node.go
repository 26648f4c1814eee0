package worldmap

// NodeType is the containment level of a map node. Levels nest strictly:
// a region contains locations, a location contains settlements or districts,
// and so on down to features.
type NodeType string

const (
	NodeTypeRegion     NodeType = "region"
	NodeTypeLocation   NodeType = "location"
	NodeTypeSettlement NodeType = "settlement"
	NodeTypeDistrict   NodeType = "district"
	NodeTypeExterior   NodeType = "exterior"
	NodeTypeInterior   NodeType = "interior"
	NodeTypeRoom       NodeType = "room"
	NodeTypeFeature    NodeType = "feature"
)

// Depth returns the containment level of the type, 0 being the outermost.
// Settlement and district share a level. Unknown types are treated as the
// deepest non-feature level so bad data still lays out.
func (t NodeType) Depth() int {
	switch t {
	case NodeTypeRegion:
		return 0
	case NodeTypeLocation:
		return 1
	case NodeTypeSettlement, NodeTypeDistrict:
		return 2
	case NodeTypeExterior:
		return 3
	case NodeTypeInterior:
		return 4
	case NodeTypeRoom:
		return 5
	case NodeTypeFeature:
		return 6
	default:
		return 5
	}
}

// Valid reports whether the type is one of the known containment levels.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeRegion, NodeTypeLocation, NodeTypeSettlement, NodeTypeDistrict,
		NodeTypeExterior, NodeTypeInterior, NodeTypeRoom, NodeTypeFeature:
		return true
	}
	return false
}

// Position is a point in the map's local coordinate space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapNode is a place in the game world. ParentNodeID is structural
// containment only; it never implies a travel connection.
type MapNode struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Aliases      []string `json:"aliases,omitempty"`
	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status,omitempty"`
	NodeType     NodeType `json:"node_type"`
	ParentNodeID string   `json:"parent_node_id,omitempty"`
	Position     Position `json:"position"`
	VisualRadius float64  `json:"visual_radius,omitempty"` // cached by the layout engine
}

// PresenceFunc reports whether an item or vehicle is present at a node.
// It drives icon overlays only and has no effect on layout.
type PresenceFunc func(nodeID string) bool
