package worldmap

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
)

// MapData is the host's snapshot of the world graph. The engine never
// mutates a snapshot it is given; derived results (positions, offsets,
// routes) are produced as new values.
type MapData struct {
	Nodes []MapNode `json:"nodes"`
	Edges []MapEdge `json:"edges"`
}

// Node returns the node with the given id, or nil.
func (m *MapData) Node(id string) *MapNode {
	for i := range m.Nodes {
		if m.Nodes[i].ID == id {
			return &m.Nodes[i]
		}
	}
	return nil
}

// Parent returns the structural parent of the node, or nil for roots and
// dangling parent references.
func (m *MapData) Parent(n *MapNode) *MapNode {
	if n == nil || n.ParentNodeID == "" {
		return nil
	}
	return m.Node(n.ParentNodeID)
}

// Children returns the ids of all nodes whose parent is id, sorted so that
// callers iterating them produce stable output.
func (m *MapData) Children(id string) []string {
	var out []string
	for i := range m.Nodes {
		if m.Nodes[i].ParentNodeID == id {
			out = append(out, m.Nodes[i].ID)
		}
	}
	sort.Strings(out)
	return out
}

// Roots returns the ids of all nodes with no resolvable parent, sorted.
func (m *MapData) Roots() []string {
	var out []string
	for i := range m.Nodes {
		p := m.Nodes[i].ParentNodeID
		if p == "" || m.Node(p) == nil {
			out = append(out, m.Nodes[i].ID)
		}
	}
	sort.Strings(out)
	return out
}

// IsAncestor reports whether ancestorID appears on nodeID's parent chain.
// A node is not its own ancestor. The walk is capped at the node count so
// a cyclic chain in bad data cannot loop forever.
func (m *MapData) IsAncestor(ancestorID, nodeID string) bool {
	n := m.Node(nodeID)
	for steps := 0; n != nil && steps <= len(m.Nodes); steps++ {
		if n.ParentNodeID == "" {
			return false
		}
		if n.ParentNodeID == ancestorID {
			return true
		}
		n = m.Node(n.ParentNodeID)
	}
	return false
}

// Sanitize returns a copy of the snapshot with dangling parent references
// cleared and edges referencing missing nodes dropped. One bad record never
// blocks the rest of the graph; each skip is logged at Warn.
func (m *MapData) Sanitize(logger *slog.Logger) *MapData {
	out := &MapData{
		Nodes: make([]MapNode, len(m.Nodes)),
		Edges: make([]MapEdge, 0, len(m.Edges)),
	}
	copy(out.Nodes, m.Nodes)

	for i := range out.Nodes {
		p := out.Nodes[i].ParentNodeID
		if p != "" && m.Node(p) == nil {
			if logger != nil {
				logger.Warn("Dropping dangling parent reference",
					"node_id", out.Nodes[i].ID, "parent_node_id", p)
			}
			out.Nodes[i].ParentNodeID = ""
		}
	}

	for _, e := range m.Edges {
		if m.Node(e.SourceNodeID) == nil || m.Node(e.TargetNodeID) == nil {
			if logger != nil {
				logger.Warn("Dropping edge with missing endpoint",
					"edge_id", e.ID, "source", e.SourceNodeID, "target", e.TargetNodeID)
			}
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}

// Validate reports structural problems without fixing them: duplicate ids,
// dangling parents, edges with missing endpoints, and cyclic parent chains.
func (m *MapData) Validate() []error {
	var errs []error

	seen := make(map[string]bool, len(m.Nodes))
	for i := range m.Nodes {
		n := &m.Nodes[i]
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node %d: empty id", i))
			continue
		}
		if seen[n.ID] {
			errs = append(errs, fmt.Errorf("node %q: duplicate id", n.ID))
		}
		seen[n.ID] = true
		if !n.NodeType.Valid() {
			errs = append(errs, fmt.Errorf("node %q: unknown node type %q", n.ID, n.NodeType))
		}
		if n.ParentNodeID != "" && m.Node(n.ParentNodeID) == nil {
			errs = append(errs, fmt.Errorf("node %q: dangling parent %q", n.ID, n.ParentNodeID))
		}
	}

	for i := range m.Nodes {
		if m.onCycle(m.Nodes[i].ID) {
			errs = append(errs, fmt.Errorf("node %q: cyclic parent chain", m.Nodes[i].ID))
		}
	}

	for _, e := range m.Edges {
		if m.Node(e.SourceNodeID) == nil {
			errs = append(errs, fmt.Errorf("edge %q: missing source node %q", e.ID, e.SourceNodeID))
		}
		if m.Node(e.TargetNodeID) == nil {
			errs = append(errs, fmt.Errorf("edge %q: missing target node %q", e.ID, e.TargetNodeID))
		}
	}
	return errs
}

func (m *MapData) onCycle(id string) bool {
	n := m.Node(id)
	for steps := 0; n != nil; steps++ {
		if steps > len(m.Nodes) {
			return true
		}
		n = m.Parent(n)
	}
	return false
}

// Version hashes the structural content of the snapshot: node ids, types
// and parents, and edge endpoints with their travel data. Positions and
// cached radii are excluded, so relayout alone does not change the version.
// Used as the memoization key for route caching.
func (m *MapData) Version() uint64 {
	ids := make([]string, 0, len(m.Nodes))
	for i := range m.Nodes {
		ids = append(ids, m.Nodes[i].ID)
	}
	sort.Strings(ids)

	h := fnv.New64a()
	for _, id := range ids {
		n := m.Node(id)
		fmt.Fprintf(h, "n|%s|%s|%s\n", n.ID, n.NodeType, n.ParentNodeID)
	}

	eids := make([]string, 0, len(m.Edges))
	byID := make(map[string]MapEdge, len(m.Edges))
	for _, e := range m.Edges {
		eids = append(eids, e.ID)
		byID[e.ID] = e
	}
	sort.Strings(eids)
	for _, id := range eids {
		e := byID[id]
		fmt.Fprintf(h, "e|%s|%s|%s|%s|%g\n", e.ID, e.SourceNodeID, e.TargetNodeID, e.Data.Type, e.Data.TravelTime)
	}
	return h.Sum64()
}
